package tracker

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"

	SettingsID int64 = 1

	DateLayout = "2006-01-02"
)

// Date is a calendar day that travels as YYYY-MM-DD in JSON and in the database.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	// Some drivers hand back full timestamps for DATE columns.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MODELS:

type Transaction struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        Date    `json:"date"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

type Budget struct {
	ID              int64   `json:"id"`
	Category        string  `json:"category"`
	AllocatedAmount float64 `json:"allocatedAmount"`
	SpentAmount     float64 `json:"spentAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
	PercentageSpent int     `json:"percentageSpent"`
}

type Bill struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	DueDate     Date    `json:"dueDate"`
	IsPaid      bool    `json:"isPaid"`
	Category    string  `json:"category"`
}

type Settings struct {
	ID int64 `json:"id"`

	// Profile
	UserName string `json:"username"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	Language string `json:"language"`

	// Preferences
	Notifications  bool `json:"notifications"`
	TwoFactorAuth  bool `json:"twoFactorAuth"`
	AutoBackup     bool `json:"autoBackup"`
	BudgetAlerts   bool `json:"budgetAlerts"`
	SpendingLimits bool `json:"spendingLimits"`
	EmailReports   bool `json:"emailReports"`

	// Display
	Theme       string `json:"theme"`
	CompactMode bool   `json:"compactMode"`
	ShowCharts  bool   `json:"showCharts"`
	ShowTips    bool   `json:"showTips"`
}

func DefaultSettings() Settings {
	return Settings{
		ID:             SettingsID,
		UserName:       "Alex Johnson",
		Email:          "alex.johnson@example.com",
		Currency:       "USD",
		Language:       "en",
		Notifications:  true,
		TwoFactorAuth:  false,
		AutoBackup:     true,
		BudgetAlerts:   true,
		SpendingLimits: true,
		EmailReports:   true,
		Theme:          "light",
		CompactMode:    false,
		ShowCharts:     true,
		ShowTips:       true,
	}
}

// RESPONSES:

type DashboardStats struct {
	TotalIncome       float64 `json:"totalIncome"`
	TotalExpenses     float64 `json:"totalExpenses"`
	CurrentBalance    float64 `json:"currentBalance"`
	MonthlySavings    float64 `json:"monthlySavings"`
	IncomeChange      string  `json:"incomeChange"`
	ExpenseChange     string  `json:"expenseChange"`
	SavingsPercentage string  `json:"savingsPercentage"`
}
