package tracker

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func txn(tType string, amount float64) Transaction {
	return Transaction{
		Description: "test",
		Category:    "General",
		Date:        NewDate(2025, time.January, 15),
		Amount:      amount,
		Type:        tType,
	}
}

func TestComputeDashboardStats(t *testing.T) {
	tests := []struct {
		name         string
		transactions []Transaction
		want         DashboardStats
	}{
		{
			name: "Success - Income and expenses",
			transactions: []Transaction{
				txn(TypeIncome, 100),
				txn(TypeIncome, 200),
				txn(TypeExpense, 50),
			},
			want: DashboardStats{
				TotalIncome:       300,
				TotalExpenses:     50,
				CurrentBalance:    250,
				MonthlySavings:    75,
				IncomeChange:      "+12%",
				ExpenseChange:     "-5%",
				SavingsPercentage: "83%",
			},
		},
		{
			name:         "Success - No transactions",
			transactions: nil,
			want: DashboardStats{
				IncomeChange:      "+12%",
				ExpenseChange:     "-5%",
				SavingsPercentage: "0%",
			},
		},
		{
			name: "Success - Expenses only",
			transactions: []Transaction{
				txn(TypeExpense, 40.5),
				txn(TypeExpense, 9.5),
			},
			want: DashboardStats{
				TotalExpenses:     50,
				CurrentBalance:    -50,
				IncomeChange:      "+12%",
				ExpenseChange:     "-5%",
				SavingsPercentage: "0%",
			},
		},
		{
			name: "Success - Cents are rounded half up",
			transactions: []Transaction{
				txn(TypeIncome, 10.005),
				txn(TypeExpense, 0.125),
			},
			want: DashboardStats{
				TotalIncome:       10.01,
				TotalExpenses:     0.13,
				CurrentBalance:    9.88,
				MonthlySavings:    2.5,
				IncomeChange:      "+12%",
				ExpenseChange:     "-5%",
				SavingsPercentage: "83%",
			},
		},
		{
			name: "Success - Savings use unrounded income",
			transactions: []Transaction{
				txn(TypeIncome, 0.055),
			},
			want: DashboardStats{
				TotalIncome:       0.06,
				TotalExpenses:     0,
				CurrentBalance:    0.06,
				MonthlySavings:    0.01,
				IncomeChange:      "+12%",
				ExpenseChange:     "-5%",
				SavingsPercentage: "83%",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDashboardStats(tt.transactions)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDashboardBalanceIsExactDifference(t *testing.T) {
	sets := [][]Transaction{
		{txn(TypeIncome, 0.1), txn(TypeIncome, 0.2), txn(TypeExpense, 0.3)},
		{txn(TypeIncome, 1999.99), txn(TypeExpense, 1234.56), txn(TypeExpense, 0.01)},
		{txn(TypeIncome, 33.333), txn(TypeExpense, 66.667)},
		{txn(TypeExpense, 12.34)},
	}

	for _, set := range sets {
		stats := ComputeDashboardStats(set)
		income := decimal.NewFromFloat(stats.TotalIncome)
		expenses := decimal.NewFromFloat(stats.TotalExpenses)
		balance := decimal.NewFromFloat(stats.CurrentBalance)
		require.True(t, income.Sub(expenses).Equal(balance), "balance %v != %v - %v", balance, income, expenses)
	}
}

func TestRoundMoney(t *testing.T) {
	require.Equal(t, 2.5, RoundMoney(2.499999999))
	require.Equal(t, 0.13, RoundMoney(0.125))
	require.Equal(t, -0.13, RoundMoney(-0.125))
	require.Equal(t, 100.0, RoundMoney(100))
}
