package storage

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/moneymanager/money_manager/errors"
	"github.com/moneymanager/money_manager/internal/auth"
	"github.com/moneymanager/money_manager/internal/tracker"
	"github.com/stretchr/testify/require"
)

// runStorageTests exercises the behaviour every tracker.Storage must share.
func runStorageTests(t *testing.T, newStore func(t *testing.T) tracker.Storage) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
	t.Run("budgets", func(t *testing.T) { testBudgets(t, newStore(t)) })
	t.Run("bills", func(t *testing.T) { testBills(t, newStore(t)) })
	t.Run("settings", func(t *testing.T) { testSettings(t, newStore(t)) })
}

func testUsers(t *testing.T, store tracker.Storage) {
	ctx := context.Background()

	id, err := store.SaveUser(ctx, auth.User{UserName: "alex", Email: "alex@example.com", PasswordHashed: "hash"})
	require.NoError(t, err)
	require.NotZero(t, id)

	_, err = store.SaveUser(ctx, auth.User{UserName: "alex", Email: "other@example.com", PasswordHashed: "hash"})
	require.True(t, appErrors.IsCode(err, appErrors.ErrConflict))

	taken, err := store.IsUserNameTaken(ctx, "alex")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = store.IsEmailTaken(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.False(t, taken)

	user, err := store.GetUserByUserName(ctx, "alex")
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, "hash", user.PasswordHashed)

	user.UserName = "alexj"
	require.NoError(t, store.UpdateUser(ctx, user))

	got, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alexj", got.UserName)

	_, err = store.GetUserByID(ctx, 999)
	require.True(t, appErrors.IsCode(err, appErrors.ErrNotFound))
	require.Equal(t, "User not found", appErrors.MessageOf(err))

	err = store.UpdateUser(ctx, auth.User{ID: 999, UserName: "ghost", Email: "ghost@example.com"})
	require.True(t, appErrors.IsCode(err, appErrors.ErrNotFound))
}

func testTransactions(t *testing.T, store tracker.Storage) {
	ctx := context.Background()

	start := tracker.NewDate(2025, time.January, 1)
	for i := 0; i < 12; i++ {
		_, err := store.SaveTransaction(ctx, tracker.Transaction{
			Description: "coffee",
			Category:    "Food",
			Date:        tracker.Date{Time: start.AddDate(0, 0, i)},
			Amount:      float64(i + 1),
			Type:        tracker.TypeExpense,
		})
		require.NoError(t, err)
	}

	all, err := store.GetAllTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 12)
	for i := 1; i < len(all); i++ {
		require.False(t, all[i].Date.After(all[i-1].Date.Time), "transactions must be ordered by date descending")
	}
	require.Equal(t, "2025-01-12", all[0].Date.String())

	recent, err := store.GetRecentTransactions(ctx, tracker.RecentTransactionsLimit)
	require.NoError(t, err)
	require.Len(t, recent, tracker.RecentTransactionsLimit)
	require.Equal(t, all[:tracker.RecentTransactionsLimit], recent)
}

func testBudgets(t *testing.T, store tracker.Storage) {
	ctx := context.Background()

	budget := tracker.Budget{Category: "Food", AllocatedAmount: 200, SpentAmount: 150, RemainingAmount: 50, PercentageSpent: 75}
	id, err := store.SaveBudget(ctx, budget)
	require.NoError(t, err)
	budget.ID = id

	_, err = store.SaveBudget(ctx, tracker.Budget{Category: "Food", AllocatedAmount: 10})
	require.True(t, appErrors.IsCode(err, appErrors.ErrConflict))
	require.Equal(t, "Budget for this category already exists", appErrors.MessageOf(err))

	got, err := store.GetBudgetByCategory(ctx, "Food")
	require.NoError(t, err)
	require.Equal(t, budget, got)

	_, err = store.GetBudgetByCategory(ctx, "Travel")
	require.True(t, appErrors.IsCode(err, appErrors.ErrNotFound))

	budget.SpentAmount = 250
	budget.RemainingAmount = -50
	budget.PercentageSpent = 125
	require.NoError(t, store.UpdateBudget(ctx, budget))

	// Writing the same values again must still count as a match.
	require.NoError(t, store.UpdateBudget(ctx, budget))

	got, err = store.GetBudgetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, -50.0, got.RemainingAmount)

	err = store.UpdateBudget(ctx, tracker.Budget{ID: 999, Category: "Ghost"})
	require.True(t, appErrors.IsCode(err, appErrors.ErrNotFound))

	require.NoError(t, store.DeleteBudget(ctx, id))
	require.NoError(t, store.DeleteBudget(ctx, id))

	budgets, err := store.GetAllBudgets(ctx)
	require.NoError(t, err)
	require.Empty(t, budgets)
}

func testBills(t *testing.T, store tracker.Storage) {
	ctx := context.Background()

	bills := []tracker.Bill{
		{Description: "Rent", Amount: 1200, DueDate: tracker.NewDate(2025, time.March, 1), Category: "Housing"},
		{Description: "Power", Amount: 80.5, DueDate: tracker.NewDate(2025, time.February, 10), Category: "Utilities"},
		{Description: "Gym", Amount: 30, DueDate: tracker.NewDate(2025, time.January, 5), IsPaid: true, Category: "Health"},
		{Description: "Phone", Amount: 25, DueDate: tracker.NewDate(2025, time.February, 1), Category: "Utilities"},
	}
	ids := make([]int64, len(bills))
	for i, b := range bills {
		id, err := store.SaveBill(ctx, b)
		require.NoError(t, err)
		ids[i] = id
	}

	unpaid, err := store.GetUnpaidBills(ctx)
	require.NoError(t, err)
	require.Len(t, unpaid, 3)
	require.Equal(t, []string{"Phone", "Power", "Rent"}, billDescriptions(unpaid))
	for _, b := range unpaid {
		require.False(t, b.IsPaid)
	}

	toggled, err := store.ToggleBillStatus(ctx, ids[0])
	require.NoError(t, err)
	require.True(t, toggled.IsPaid)

	toggled, err = store.ToggleBillStatus(ctx, ids[0])
	require.NoError(t, err)
	require.False(t, toggled.IsPaid)

	_, err = store.ToggleBillStatus(ctx, 999)
	require.True(t, appErrors.IsCode(err, appErrors.ErrNotFound))
	require.Equal(t, "Bill not found", appErrors.MessageOf(err))

	updated := bills[2]
	updated.ID = ids[2]
	updated.IsPaid = false
	updated.Amount = 35
	require.NoError(t, store.UpdateBill(ctx, updated))

	got, err := store.GetBillByID(ctx, ids[2])
	require.NoError(t, err)
	require.Equal(t, updated, got)

	err = store.UpdateBill(ctx, tracker.Bill{ID: 999, Description: "Ghost", DueDate: tracker.NewDate(2025, time.June, 1)})
	require.True(t, appErrors.IsCode(err, appErrors.ErrNotFound))

	require.NoError(t, store.DeleteBill(ctx, ids[1]))
	require.NoError(t, store.DeleteBill(ctx, 999))

	all, err := store.GetAllBills(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func testSettings(t *testing.T, store tracker.Storage) {
	ctx := context.Background()

	first, err := store.GetOrCreateSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, tracker.DefaultSettings(), first)

	again, err := store.GetOrCreateSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, first, again)

	changed := first
	changed.ID = 999
	changed.Theme = "dark"
	changed.Currency = "EUR"
	changed.TwoFactorAuth = true

	saved, err := store.SaveSettings(ctx, changed)
	require.NoError(t, err)
	require.Equal(t, tracker.SettingsID, saved.ID)

	got, err := store.GetOrCreateSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, tracker.SettingsID, got.ID)
	require.Equal(t, "dark", got.Theme)
	require.Equal(t, "EUR", got.Currency)
	require.True(t, got.TwoFactorAuth)
}

func billDescriptions(bills []tracker.Bill) []string {
	out := make([]string, 0, len(bills))
	for _, b := range bills {
		out = append(out, b.Description)
	}
	return out
}
