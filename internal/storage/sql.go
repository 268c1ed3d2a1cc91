package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moneymanager/money_manager/internal/auth"
	"github.com/moneymanager/money_manager/internal/tracker"
)

// SQLStorage implements tracker.Storage on top of database/sql for MySQL and SQLite.
type SQLStorage struct {
	db      *sql.DB
	dialect dialect
}

func (s *SQLStorage) GetStorageType() string {
	return s.dialect.name
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// --- USERS --- //

func scanUser(row rowScanner) (auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHashed)
	return u, err
}

func (s *SQLStorage) SaveUser(ctx context.Context, user auth.User) (int64, error) {
	query := "INSERT INTO users (username, email, hashed_password) VALUES (?, ?, ?);"
	res, err := s.db.ExecContext(ctx, query, user.UserName, user.Email, user.PasswordHashed)
	if err != nil {
		if s.dialect.isDuplicate(err) {
			return 0, conflict("Username or email already exists")
		}
		return 0, internalError(ctx, "SaveUser", err, "Registration failed, try again later.")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, internalError(ctx, "SaveUser", err, "Registration failed, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) GetUserByID(ctx context.Context, id int64) (auth.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?;"
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, notFound("User not found")
		}
		return auth.User{}, internalError(ctx, "GetUserByID", err, "Failed to get user, try again later.")
	}
	return user, nil
}

func (s *SQLStorage) GetUserByUserName(ctx context.Context, username string) (auth.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ?;"
	user, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, notFound("User not found")
		}
		return auth.User{}, internalError(ctx, "GetUserByUserName", err, "Failed to get user, try again later.")
	}
	return user, nil
}

func (s *SQLStorage) exists(ctx context.Context, function string, query string, arg any) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&count); err != nil {
		return false, internalError(ctx, function, err, "Failed to check user existence, try again later.")
	}
	return count > 0, nil
}

func (s *SQLStorage) IsUserNameTaken(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "IsUserNameTaken", "SELECT COUNT(*) FROM users WHERE username = ?;", username)
}

func (s *SQLStorage) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "IsEmailTaken", "SELECT COUNT(*) FROM users WHERE email = ?;", email)
}

func (s *SQLStorage) UpdateUser(ctx context.Context, user auth.User) error {
	query := "UPDATE users SET username = ?, email = ?, hashed_password = ? WHERE id = ?;"
	res, err := s.db.ExecContext(ctx, query, user.UserName, user.Email, user.PasswordHashed, user.ID)
	if err != nil {
		if s.dialect.isDuplicate(err) {
			return conflict("Username already taken")
		}
		return internalError(ctx, "UpdateUser", err, "Failed to update user, try again later.")
	}
	return s.checkAffected(ctx, "UpdateUser", res, "User not found")
}

// checkAffected turns a write that matched no row into NOT FOUND.
func (s *SQLStorage) checkAffected(ctx context.Context, function string, res sql.Result, missing string) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return internalError(ctx, function, err, "Failed to check affected rows, try again later.")
	}
	if rowsAffected == 0 {
		return notFound(missing)
	}
	return nil
}

// --- TRANSACTIONS --- //

func (s *SQLStorage) SaveTransaction(ctx context.Context, t tracker.Transaction) (int64, error) {
	query := "INSERT INTO transactions (description, category, date, amount, type) VALUES (?, ?, ?, ?, ?);"
	res, err := s.db.ExecContext(ctx, query, t.Description, t.Category, t.Date, t.Amount, t.Type)
	if err != nil {
		return 0, internalError(ctx, "SaveTransaction", err, "Failed to save transaction, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, internalError(ctx, "SaveTransaction", err, "Failed to save transaction, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) queryTransactions(ctx context.Context, function string, query string, args ...any) ([]tracker.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, internalError(ctx, function, err, "Failed to get transactions, try again later.")
	}
	defer rows.Close()

	transactions := []tracker.Transaction{}
	for rows.Next() {
		var t tracker.Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Category, &t.Date, &t.Amount, &t.Type); err != nil {
			return nil, internalError(ctx, function, err, "Failed to get transactions, try again later.")
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError(ctx, function, err, "Failed to get transactions, try again later.")
	}
	return transactions, nil
}

func (s *SQLStorage) GetAllTransactions(ctx context.Context) ([]tracker.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions ORDER BY date DESC, id DESC;"
	return s.queryTransactions(ctx, "GetAllTransactions", query)
}

func (s *SQLStorage) GetRecentTransactions(ctx context.Context, limit int) ([]tracker.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions ORDER BY date DESC, id DESC LIMIT ?;"
	return s.queryTransactions(ctx, "GetRecentTransactions", query, limit)
}

// --- BUDGETS --- //

func scanBudget(row rowScanner) (tracker.Budget, error) {
	var b tracker.Budget
	err := row.Scan(&b.ID, &b.Category, &b.AllocatedAmount, &b.SpentAmount, &b.RemainingAmount, &b.PercentageSpent)
	return b, err
}

func (s *SQLStorage) SaveBudget(ctx context.Context, b tracker.Budget) (int64, error) {
	query := "INSERT INTO budgets (category, allocated_amount, spent_amount, remaining_amount, percentage_spent) VALUES (?, ?, ?, ?, ?);"
	res, err := s.db.ExecContext(ctx, query, b.Category, b.AllocatedAmount, b.SpentAmount, b.RemainingAmount, b.PercentageSpent)
	if err != nil {
		if s.dialect.isDuplicate(err) {
			return 0, conflict("Budget for this category already exists")
		}
		return 0, internalError(ctx, "SaveBudget", err, "Failed to save the budget, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, internalError(ctx, "SaveBudget", err, "Failed to save the budget, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) GetAllBudgets(ctx context.Context) ([]tracker.Budget, error) {
	query := "SELECT " + budgetColumns + " FROM budgets ORDER BY id;"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, internalError(ctx, "GetAllBudgets", err, "Failed to get budgets, try again later.")
	}
	defer rows.Close()

	budgets := []tracker.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, internalError(ctx, "GetAllBudgets", err, "Failed to get budgets, try again later.")
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError(ctx, "GetAllBudgets", err, "Failed to get budgets, try again later.")
	}
	return budgets, nil
}

func (s *SQLStorage) getBudget(ctx context.Context, function string, where string, arg any) (tracker.Budget, error) {
	query := "SELECT " + budgetColumns + " FROM budgets WHERE " + where + " = ?;"
	b, err := scanBudget(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tracker.Budget{}, notFound("Budget not found")
		}
		return tracker.Budget{}, internalError(ctx, function, err, "Failed to get the budget, try again later.")
	}
	return b, nil
}

func (s *SQLStorage) GetBudgetByID(ctx context.Context, id int64) (tracker.Budget, error) {
	return s.getBudget(ctx, "GetBudgetByID", "id", id)
}

func (s *SQLStorage) GetBudgetByCategory(ctx context.Context, category string) (tracker.Budget, error) {
	return s.getBudget(ctx, "GetBudgetByCategory", "category", category)
}

func (s *SQLStorage) UpdateBudget(ctx context.Context, b tracker.Budget) error {
	query := `UPDATE budgets
		SET category = ?, allocated_amount = ?, spent_amount = ?, remaining_amount = ?, percentage_spent = ?
		WHERE id = ?;`
	res, err := s.db.ExecContext(ctx, query, b.Category, b.AllocatedAmount, b.SpentAmount, b.RemainingAmount, b.PercentageSpent, b.ID)
	if err != nil {
		if s.dialect.isDuplicate(err) {
			return conflict("Budget for this category already exists")
		}
		return internalError(ctx, "UpdateBudget", err, "Failed to update the budget, try again later.")
	}
	return s.checkAffected(ctx, "UpdateBudget", res, "Budget not found")
}

func (s *SQLStorage) DeleteBudget(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?;", id); err != nil {
		return internalError(ctx, "DeleteBudget", err, "Failed to delete the budget, try again later.")
	}
	return nil
}

// --- BILLS --- //

func scanBill(row rowScanner) (tracker.Bill, error) {
	var b tracker.Bill
	err := row.Scan(&b.ID, &b.Description, &b.Amount, &b.DueDate, &b.IsPaid, &b.Category)
	return b, err
}

func (s *SQLStorage) SaveBill(ctx context.Context, b tracker.Bill) (int64, error) {
	query := "INSERT INTO bills (description, amount, due_date, is_paid, category) VALUES (?, ?, ?, ?, ?);"
	res, err := s.db.ExecContext(ctx, query, b.Description, b.Amount, b.DueDate, b.IsPaid, b.Category)
	if err != nil {
		return 0, internalError(ctx, "SaveBill", err, "Failed to save the bill, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, internalError(ctx, "SaveBill", err, "Failed to save the bill, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) queryBills(ctx context.Context, function string, query string, args ...any) ([]tracker.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, internalError(ctx, function, err, "Failed to get bills, try again later.")
	}
	defer rows.Close()

	bills := []tracker.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, internalError(ctx, function, err, "Failed to get bills, try again later.")
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError(ctx, function, err, "Failed to get bills, try again later.")
	}
	return bills, nil
}

func (s *SQLStorage) GetAllBills(ctx context.Context) ([]tracker.Bill, error) {
	return s.queryBills(ctx, "GetAllBills", "SELECT "+billColumns+" FROM bills ORDER BY id;")
}

func (s *SQLStorage) GetUnpaidBills(ctx context.Context) ([]tracker.Bill, error) {
	query := "SELECT " + billColumns + " FROM bills WHERE is_paid = ? ORDER BY due_date ASC, id ASC;"
	return s.queryBills(ctx, "GetUnpaidBills", query, false)
}

func (s *SQLStorage) GetBillByID(ctx context.Context, id int64) (tracker.Bill, error) {
	query := "SELECT " + billColumns + " FROM bills WHERE id = ?;"
	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tracker.Bill{}, notFound("Bill not found")
		}
		return tracker.Bill{}, internalError(ctx, "GetBillByID", err, "Failed to get the bill, try again later.")
	}
	return b, nil
}

func (s *SQLStorage) UpdateBill(ctx context.Context, b tracker.Bill) error {
	query := "UPDATE bills SET description = ?, amount = ?, due_date = ?, is_paid = ?, category = ? WHERE id = ?;"
	res, err := s.db.ExecContext(ctx, query, b.Description, b.Amount, b.DueDate, b.IsPaid, b.Category, b.ID)
	if err != nil {
		return internalError(ctx, "UpdateBill", err, "Failed to update the bill, try again later.")
	}
	return s.checkAffected(ctx, "UpdateBill", res, "Bill not found")
}

// ToggleBillStatus flips is_paid in a single statement so concurrent toggles never read a stale flag.
func (s *SQLStorage) ToggleBillStatus(ctx context.Context, id int64) (tracker.Bill, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE bills SET is_paid = NOT is_paid WHERE id = ?;", id)
	if err != nil {
		return tracker.Bill{}, internalError(ctx, "ToggleBillStatus", err, "Failed to update the bill, try again later.")
	}
	if err := s.checkAffected(ctx, "ToggleBillStatus", res, "Bill not found"); err != nil {
		return tracker.Bill{}, err
	}
	return s.GetBillByID(ctx, id)
}

func (s *SQLStorage) DeleteBill(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?;", id); err != nil {
		return internalError(ctx, "DeleteBill", err, "Failed to delete the bill, try again later.")
	}
	return nil
}

// --- SETTINGS --- //

func settingsArgs(st tracker.Settings) []any {
	return []any{
		tracker.SettingsID, st.UserName, st.Email, st.Currency, st.Language,
		st.Notifications, st.TwoFactorAuth, st.AutoBackup, st.BudgetAlerts, st.SpendingLimits, st.EmailReports,
		st.Theme, st.CompactMode, st.ShowCharts, st.ShowTips,
	}
}

const settingsPlaceholders = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

func (s *SQLStorage) getSettings(ctx context.Context) (tracker.Settings, error) {
	var st tracker.Settings
	query := "SELECT " + settingsColumns + " FROM user_settings WHERE id = ?;"
	err := s.db.QueryRowContext(ctx, query, tracker.SettingsID).Scan(
		&st.ID, &st.UserName, &st.Email, &st.Currency, &st.Language,
		&st.Notifications, &st.TwoFactorAuth, &st.AutoBackup, &st.BudgetAlerts, &st.SpendingLimits, &st.EmailReports,
		&st.Theme, &st.CompactMode, &st.ShowCharts, &st.ShowTips,
	)
	return st, err
}

// GetOrCreateSettings inserts the default row only when id 1 is absent, so concurrent first reads converge on one row.
func (s *SQLStorage) GetOrCreateSettings(ctx context.Context) (tracker.Settings, error) {
	query := fmt.Sprintf("%s INTO user_settings (%s) VALUES %s;", s.dialect.insertIgnore, settingsColumns, settingsPlaceholders)
	if _, err := s.db.ExecContext(ctx, query, settingsArgs(tracker.DefaultSettings())...); err != nil {
		return tracker.Settings{}, internalError(ctx, "GetOrCreateSettings", err, "Failed to get settings, try again later.")
	}

	st, err := s.getSettings(ctx)
	if err != nil {
		return tracker.Settings{}, internalError(ctx, "GetOrCreateSettings", err, "Failed to get settings, try again later.")
	}
	return st, nil
}

// SaveSettings always writes row 1, whatever st.ID holds.
func (s *SQLStorage) SaveSettings(ctx context.Context, st tracker.Settings) (tracker.Settings, error) {
	query := fmt.Sprintf("REPLACE INTO user_settings (%s) VALUES %s;", settingsColumns, settingsPlaceholders)
	if _, err := s.db.ExecContext(ctx, query, settingsArgs(st)...); err != nil {
		return tracker.Settings{}, internalError(ctx, "SaveSettings", err, "Failed to save settings, try again later.")
	}
	st.ID = tracker.SettingsID
	return st, nil
}
