package api

import (
	"net/http"

	"github.com/0xcafe-io/iz"
	"github.com/rs/cors"
)

func NewCors(allowedOrigin string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}

// NewRouter registers every endpoint and wraps the mux with tracing and CORS.
func NewRouter(api *Api, allowedOrigin string) http.Handler {
	server := http.NewServeMux()

	// AUTH ENDPOINTS.
	server.HandleFunc("POST /api/auth/register", iz.Bind(api.RegisterHandler))            // Create User
	server.HandleFunc("POST /api/auth/login", iz.Bind(api.LoginHandler))                  // Login User
	server.HandleFunc("PUT /api/auth/update/{id}", iz.Bind(api.UpdateCredentialsHandler)) // Change username or password

	// TRANSACTION ENDPOINTS.
	server.HandleFunc("GET /api/transactions", iz.Bind(api.GetAllTransactionsHandler))          // Newest first
	server.HandleFunc("GET /api/transactions/recent", iz.Bind(api.GetRecentTransactionsHandler)) // Latest 10
	server.HandleFunc("POST /api/transactions", iz.Bind(api.SaveTransactionHandler))            // Create Transaction

	// BUDGET ENDPOINTS.
	server.HandleFunc("GET /api/budgets", iz.Bind(api.GetAllBudgetsHandler))
	server.HandleFunc("POST /api/budgets", iz.Bind(api.SaveBudgetHandler))
	server.HandleFunc("POST /api/budgets/spend", iz.Bind(api.SpendBudgetHandler)) // Add to spent amount by category
	server.HandleFunc("PUT /api/budgets/{id}", iz.Bind(api.UpdateBudgetHandler))
	server.HandleFunc("DELETE /api/budgets/{id}", iz.Bind(api.DeleteBudgetHandler))

	// BILL ENDPOINTS.
	server.HandleFunc("GET /api/bills", iz.Bind(api.GetAllBillsHandler))
	server.HandleFunc("GET /api/bills/unpaid", iz.Bind(api.GetUnpaidBillsHandler)) // Earliest due first
	server.HandleFunc("POST /api/bills", iz.Bind(api.SaveBillHandler))
	server.HandleFunc("PUT /api/bills/{id}", iz.Bind(api.UpdateBillHandler))
	server.HandleFunc("DELETE /api/bills/{id}", iz.Bind(api.DeleteBillHandler))
	server.HandleFunc("PATCH /api/bills/{id}/toggle-status", iz.Bind(api.ToggleBillStatusHandler))

	// DASHBOARD ENDPOINTS.
	server.HandleFunc("GET /api/dashboard/stats", iz.Bind(api.GetDashboardStatsHandler))

	// SETTINGS ENDPOINTS.
	server.HandleFunc("GET /api/settings", iz.Bind(api.GetSettingsHandler)) // Created with defaults on first read
	server.HandleFunc("PUT /api/settings", iz.Bind(api.UpdateSettingsHandler))
	server.HandleFunc("GET /api/settings/test", iz.Bind(api.SettingsHealthHandler))

	return NewCors(allowedOrigin).Handler(WithTrace(server))
}
