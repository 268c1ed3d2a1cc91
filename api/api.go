package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/0xcafe-io/iz"
	appErrors "github.com/moneymanager/money_manager/errors"
	"github.com/moneymanager/money_manager/internal/auth"
	"github.com/moneymanager/money_manager/internal/contextutil"
	"github.com/moneymanager/money_manager/internal/tracker"
	"github.com/moneymanager/money_manager/logging"
)

type Api struct {
	Service *tracker.MoneyTracker
}

func NewApi(service *tracker.MoneyTracker) *Api {
	return &Api{
		Service: service,
	}
}

func decodeBody(r *iz.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("invalid request body: %s", err.Error()))
	}
	return nil
}

func messageResponse(status int, message string) iz.Responder {
	return iz.Respond().Status(status).JSON(MessageResponse{Message: message})
}

// failure turns a service error into a response. Missing records answer with an empty 404.
func failure(r *iz.Request, handler string, err error) iz.Responder {
	status := httpStatusFromError(err)
	if status == http.StatusNotFound {
		return iz.Respond().Status(status).Text("")
	}
	return errorResponse(r, handler, status, err)
}

func errorResponse(r *iz.Request, handler string, status int, err error) iz.Responder {
	if status == http.StatusInternalServerError {
		traceID := contextutil.TraceIDFromContext(r.Context())
		logging.Logger.Errorf("[TraceID=%s] | failed in Api.%s() | Error: %v", traceID, handler, err)
	}
	return messageResponse(status, appErrors.MessageOf(err))
}

// --- AUTH --- //

func (api *Api) RegisterHandler(r *iz.Request) iz.Responder {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		return messageResponse(http.StatusBadRequest, appErrors.MessageOf(err))
	}

	newUser := auth.NewUser{
		UserName:      req.UserName,
		Email:         req.Email,
		PasswordPlain: req.Password,
	}

	user, err := api.Service.Register(r.Context(), newUser)
	if err != nil {
		return errorResponse(r, "RegisterHandler", authStatusFromError(err), err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(user)
}

func (api *Api) LoginHandler(r *iz.Request) iz.Responder {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		return messageResponse(http.StatusBadRequest, appErrors.MessageOf(err))
	}

	creds := auth.UserCredentialsPure{
		UserName:      req.UserName,
		PasswordPlain: req.Password,
	}

	user, err := api.Service.Login(r.Context(), creds)
	if err != nil {
		status := http.StatusUnauthorized
		if appErrors.IsCode(err, appErrors.ErrInternal) {
			status = http.StatusInternalServerError
		}
		return errorResponse(r, "LoginHandler", status, err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(user)
}

func (api *Api) UpdateCredentialsHandler(r *iz.Request) iz.Responder {
	userID, err := parseID(r.PathValue("id"))
	if err != nil {
		return messageResponse(http.StatusBadRequest, appErrors.MessageOf(err))
	}

	var req UpdateCredentialsRequest
	if err := decodeBody(r, &req); err != nil {
		return messageResponse(http.StatusBadRequest, appErrors.MessageOf(err))
	}

	fields := auth.UpdateCredentials{
		NewUserName:      req.UserName,
		NewPasswordPlain: req.Password,
	}

	user, err := api.Service.UpdateCredentials(r.Context(), userID, fields)
	if err != nil {
		return errorResponse(r, "UpdateCredentialsHandler", authStatusFromError(err), err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(user)
}

// --- TRANSACTIONS --- //

func (api *Api) GetAllTransactionsHandler(r *iz.Request) iz.Responder {
	transactions, err := api.Service.GetAllTransactions(r.Context())
	if err != nil {
		return failure(r, "GetAllTransactionsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(transactions)
}

func (api *Api) GetRecentTransactionsHandler(r *iz.Request) iz.Responder {
	transactions, err := api.Service.GetRecentTransactions(r.Context())
	if err != nil {
		return failure(r, "GetRecentTransactionsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(transactions)
}

func (api *Api) SaveTransactionHandler(r *iz.Request) iz.Responder {
	var req TransactionRequest
	if err := decodeBody(r, &req); err != nil {
		return failure(r, "SaveTransactionHandler", err)
	}

	transaction, err := api.Service.SaveTransaction(r.Context(), req.toTracker())
	if err != nil {
		return failure(r, "SaveTransactionHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(transaction)
}

// --- BUDGETS --- //

func (api *Api) GetAllBudgetsHandler(r *iz.Request) iz.Responder {
	budgets, err := api.Service.GetAllBudgets(r.Context())
	if err != nil {
		return failure(r, "GetAllBudgetsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(budgets)
}

func (api *Api) SaveBudgetHandler(r *iz.Request) iz.Responder {
	var req BudgetRequest
	if err := decodeBody(r, &req); err != nil {
		return failure(r, "SaveBudgetHandler", err)
	}

	budget, err := api.Service.SaveBudget(r.Context(), req.toTracker())
	if err != nil {
		return failure(r, "SaveBudgetHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(budget)
}

func (api *Api) UpdateBudgetHandler(r *iz.Request) iz.Responder {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return failure(r, "UpdateBudgetHandler", err)
	}

	var req BudgetRequest
	if err := decodeBody(r, &req); err != nil {
		return failure(r, "UpdateBudgetHandler", err)
	}

	budget, err := api.Service.UpdateBudget(r.Context(), id, req.toTracker())
	if err != nil {
		return failure(r, "UpdateBudgetHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(budget)
}

func (api *Api) SpendBudgetHandler(r *iz.Request) iz.Responder {
	var req SpendRequest
	if err := decodeBody(r, &req); err != nil {
		return failure(r, "SpendBudgetHandler", err)
	}

	spend := tracker.SpendRequest{
		Category: req.Category,
		Amount:   req.Amount,
	}

	budget, err := api.Service.AddSpentToCategory(r.Context(), spend)
	if err != nil {
		// The caller names a category, not an id, so tell them which lookup failed.
		if appErrors.IsCode(err, appErrors.ErrNotFound) {
			return messageResponse(http.StatusNotFound, appErrors.MessageOf(err))
		}
		return failure(r, "SpendBudgetHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(budget)
}

func (api *Api) DeleteBudgetHandler(r *iz.Request) iz.Responder {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return failure(r, "DeleteBudgetHandler", err)
	}

	if err := api.Service.DeleteBudget(r.Context(), id); err != nil {
		return failure(r, "DeleteBudgetHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).Text("")
}

// --- BILLS --- //

func (api *Api) GetAllBillsHandler(r *iz.Request) iz.Responder {
	bills, err := api.Service.GetAllBills(r.Context())
	if err != nil {
		return failure(r, "GetAllBillsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(bills)
}

func (api *Api) GetUnpaidBillsHandler(r *iz.Request) iz.Responder {
	bills, err := api.Service.ListUnpaidBills(r.Context())
	if err != nil {
		return failure(r, "GetUnpaidBillsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(bills)
}

func (api *Api) SaveBillHandler(r *iz.Request) iz.Responder {
	var req BillRequest
	if err := decodeBody(r, &req); err != nil {
		return failure(r, "SaveBillHandler", err)
	}

	bill, err := api.Service.SaveBill(r.Context(), req.toTracker())
	if err != nil {
		return failure(r, "SaveBillHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(bill)
}

func (api *Api) UpdateBillHandler(r *iz.Request) iz.Responder {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return failure(r, "UpdateBillHandler", err)
	}

	var req BillRequest
	if err := decodeBody(r, &req); err != nil {
		return failure(r, "UpdateBillHandler", err)
	}

	bill, err := api.Service.UpdateBill(r.Context(), id, req.toTracker())
	if err != nil {
		return failure(r, "UpdateBillHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(bill)
}

func (api *Api) ToggleBillStatusHandler(r *iz.Request) iz.Responder {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return failure(r, "ToggleBillStatusHandler", err)
	}

	bill, err := api.Service.ToggleBillStatus(r.Context(), id)
	if err != nil {
		return failure(r, "ToggleBillStatusHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(bill)
}

func (api *Api) DeleteBillHandler(r *iz.Request) iz.Responder {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return failure(r, "DeleteBillHandler", err)
	}

	if err := api.Service.DeleteBill(r.Context(), id); err != nil {
		return failure(r, "DeleteBillHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).Text("")
}

// --- DASHBOARD --- //

func (api *Api) GetDashboardStatsHandler(r *iz.Request) iz.Responder {
	stats, err := api.Service.GetDashboardStats(r.Context())
	if err != nil {
		return failure(r, "GetDashboardStatsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(stats)
}

// --- SETTINGS --- //

func (api *Api) GetSettingsHandler(r *iz.Request) iz.Responder {
	settings, err := api.Service.GetSettings(r.Context())
	if err != nil {
		return failure(r, "GetSettingsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(settings)
}

func (api *Api) UpdateSettingsHandler(r *iz.Request) iz.Responder {
	var settings tracker.Settings
	if err := decodeBody(r, &settings); err != nil {
		return failure(r, "UpdateSettingsHandler", err)
	}

	saved, err := api.Service.UpdateSettings(r.Context(), settings)
	if err != nil {
		return failure(r, "UpdateSettingsHandler", err)
	}
	return iz.Respond().Status(http.StatusOK).JSON(saved)
}

func (api *Api) SettingsHealthHandler(r *iz.Request) iz.Responder {
	return iz.Respond().Status(http.StatusOK).Text("Settings Controller is working!")
}
