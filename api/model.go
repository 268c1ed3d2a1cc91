package api

import (
	"fmt"
	"net/http"
	"strconv"

	appErrors "github.com/moneymanager/money_manager/errors"
	"github.com/moneymanager/money_manager/internal/tracker"
)

// REQUESTS START:

type RegisterRequest struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type UpdateCredentialsRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type TransactionRequest struct {
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Date        tracker.Date `json:"date"`
	Amount      float64      `json:"amount"`
	Type        string       `json:"type"`
}

type BudgetRequest struct {
	Category        string  `json:"category"`
	AllocatedAmount float64 `json:"allocatedAmount"`
	SpentAmount     float64 `json:"spentAmount"`
}

type SpendRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type BillRequest struct {
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	DueDate     tracker.Date `json:"dueDate"`
	IsPaid      bool         `json:"isPaid"`
	Category    string       `json:"category"`
}

// REQUESTS END:

// RESPONSES:

type MessageResponse struct {
	Message string `json:"message"`
}

func (req TransactionRequest) toTracker() tracker.TransactionRequest {
	return tracker.TransactionRequest{
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Amount:      req.Amount,
		Type:        req.Type,
	}
}

func (req BudgetRequest) toTracker() tracker.BudgetRequest {
	return tracker.BudgetRequest{
		Category:        req.Category,
		AllocatedAmount: req.AllocatedAmount,
		SpentAmount:     req.SpentAmount,
	}
}

func (req BillRequest) toTracker() tracker.BillRequest {
	return tracker.BillRequest{
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		IsPaid:      req.IsPaid,
		Category:    req.Category,
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("invalid id: '%s'", raw))
	}
	return id, nil
}

func httpStatusFromError(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrNotFound:
		return http.StatusNotFound
	case appErrors.ErrInvalidInput:
		return http.StatusBadRequest
	case appErrors.ErrAuth:
		return http.StatusUnauthorized
	case appErrors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// authStatusFromError maps account errors: everything the caller can fix is a 400.
func authStatusFromError(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrInternal:
		return http.StatusInternalServerError
	case appErrors.ErrAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
