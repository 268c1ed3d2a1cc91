package tracker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	monthlySavingsRate = decimal.RequireFromString("0.25")
	savingsTargetRate  = decimal.RequireFromString("0.30")
	hundred            = decimal.NewFromInt(100)
	half               = decimal.RequireFromString("0.5")
)

// Period-over-period deltas are not computed yet; the dashboard reports fixed values.
const (
	PlaceholderIncomeChange  = "+12%"
	PlaceholderExpenseChange = "-5%"
)

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// ComputeDashboardStats sums the transaction set into the dashboard figures. It has no side effects.
func ComputeDashboardStats(transactions []Transaction) DashboardStats {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			totalIncome = totalIncome.Add(decimal.NewFromFloat(t.Amount))
		case TypeExpense:
			totalExpenses = totalExpenses.Add(decimal.NewFromFloat(t.Amount))
		}
	}

	// Savings come from the raw income; only the reported figures are rounded.
	monthlySavings := totalIncome.Mul(monthlySavingsRate)
	savingsTarget := totalIncome.Mul(savingsTargetRate)

	totalIncome = totalIncome.Round(2)
	totalExpenses = totalExpenses.Round(2)
	currentBalance := totalIncome.Sub(totalExpenses)

	savingsPercentage := "0%"
	if savingsTarget.IsPositive() {
		percent := monthlySavings.Div(savingsTarget).Mul(hundred).Round(0)
		savingsPercentage = fmt.Sprintf("%s%%", percent.StringFixed(0))
	}

	return DashboardStats{
		TotalIncome:       totalIncome.InexactFloat64(),
		TotalExpenses:     totalExpenses.InexactFloat64(),
		CurrentBalance:    currentBalance.Round(2).InexactFloat64(),
		MonthlySavings:    monthlySavings.Round(2).InexactFloat64(),
		IncomeChange:      PlaceholderIncomeChange,
		ExpenseChange:     PlaceholderExpenseChange,
		SavingsPercentage: savingsPercentage,
	}
}

func (mt *MoneyTracker) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	transactions, err := mt.storage.GetAllTransactions(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to get transactions for dashboard: %w", err)
	}
	return ComputeDashboardStats(transactions), nil
}
