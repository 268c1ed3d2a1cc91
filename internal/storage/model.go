package storage

import (
	"context"

	appErrors "github.com/moneymanager/money_manager/errors"
	"github.com/moneymanager/money_manager/internal/contextutil"
	"github.com/moneymanager/money_manager/logging"
)

const (
	userColumns        = "id, username, email, hashed_password"
	transactionColumns = "id, description, category, date, amount, type"
	budgetColumns      = "id, category, allocated_amount, spent_amount, remaining_amount, percentage_spent"
	billColumns        = "id, description, amount, due_date, is_paid, category"
	settingsColumns    = "id, username, email, currency, language, notifications, two_factor_auth, auto_backup, budget_alerts, spending_limits, email_reports, theme, compact_mode, show_charts, show_tips"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// dialect holds what differs between the SQL engines behind SQLStorage.
type dialect struct {
	name         string
	insertIgnore string
	isDuplicate  func(err error) bool
}

func internalError(ctx context.Context, function string, err error, message string) error {
	traceID := contextutil.TraceIDFromContext(ctx)
	logging.Logger.Errorf("[TraceID=%s] | failed in Storage.%s() function | Error: %v", traceID, function, err)
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrInternal,
		Message: message,
	}
}

func notFound(message string) error {
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: message,
	}
}

func conflict(message string) error {
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrConflict,
		Message: message,
	}
}
