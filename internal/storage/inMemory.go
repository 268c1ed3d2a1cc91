package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/moneymanager/money_manager/internal/auth"
	"github.com/moneymanager/money_manager/internal/config"
	"github.com/moneymanager/money_manager/internal/tracker"
)

// InMemoryStorage keeps every table in process memory. Data is lost on restart.
type InMemoryStorage struct {
	mu sync.RWMutex

	nextID       int64
	users        map[int64]auth.User
	transactions map[int64]tracker.Transaction
	budgets      map[int64]tracker.Budget
	bills        map[int64]tracker.Bill
	settings     *tracker.Settings
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		users:        make(map[int64]auth.User),
		transactions: make(map[int64]tracker.Transaction),
		budgets:      make(map[int64]tracker.Budget),
		bills:        make(map[int64]tracker.Bill),
	}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return config.StorageMemory
}

func (inMem *InMemoryStorage) newID() int64 {
	inMem.nextID++
	return inMem.nextID
}

// --- USERS --- //

func (inMem *InMemoryStorage) SaveUser(ctx context.Context, user auth.User) (int64, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, u := range inMem.users {
		if u.UserName == user.UserName || u.Email == user.Email {
			return 0, conflict("Username or email already exists")
		}
	}
	user.ID = inMem.newID()
	inMem.users[user.ID] = user
	return user.ID, nil
}

func (inMem *InMemoryStorage) GetUserByID(ctx context.Context, id int64) (auth.User, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	user, ok := inMem.users[id]
	if !ok {
		return auth.User{}, notFound("User not found")
	}
	return user, nil
}

func (inMem *InMemoryStorage) GetUserByUserName(ctx context.Context, username string) (auth.User, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	for _, user := range inMem.users {
		if user.UserName == username {
			return user, nil
		}
	}
	return auth.User{}, notFound("User not found")
}

func (inMem *InMemoryStorage) IsUserNameTaken(ctx context.Context, username string) (bool, error) {
	_, err := inMem.GetUserByUserName(ctx, username)
	return err == nil, nil
}

func (inMem *InMemoryStorage) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	for _, user := range inMem.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (inMem *InMemoryStorage) UpdateUser(ctx context.Context, user auth.User) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	if _, ok := inMem.users[user.ID]; !ok {
		return notFound("User not found")
	}
	for id, u := range inMem.users {
		if id != user.ID && (u.UserName == user.UserName || u.Email == user.Email) {
			return conflict("Username already taken")
		}
	}
	inMem.users[user.ID] = user
	return nil
}

// --- TRANSACTIONS --- //

func (inMem *InMemoryStorage) SaveTransaction(ctx context.Context, t tracker.Transaction) (int64, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	t.ID = inMem.newID()
	inMem.transactions[t.ID] = t
	return t.ID, nil
}

func (inMem *InMemoryStorage) GetAllTransactions(ctx context.Context) ([]tracker.Transaction, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	result := make([]tracker.Transaction, 0, len(inMem.transactions))
	for _, t := range inMem.transactions {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date.Time) {
			return result[i].Date.After(result[j].Date.Time)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (inMem *InMemoryStorage) GetRecentTransactions(ctx context.Context, limit int) ([]tracker.Transaction, error) {
	all, err := inMem.GetAllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// --- BUDGETS --- //

func (inMem *InMemoryStorage) categoryTaken(category string, exceptID int64) bool {
	for id, b := range inMem.budgets {
		if id != exceptID && b.Category == category {
			return true
		}
	}
	return false
}

func (inMem *InMemoryStorage) SaveBudget(ctx context.Context, b tracker.Budget) (int64, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	if inMem.categoryTaken(b.Category, 0) {
		return 0, conflict("Budget for this category already exists")
	}
	b.ID = inMem.newID()
	inMem.budgets[b.ID] = b
	return b.ID, nil
}

func (inMem *InMemoryStorage) GetAllBudgets(ctx context.Context) ([]tracker.Budget, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	result := make([]tracker.Budget, 0, len(inMem.budgets))
	for _, b := range inMem.budgets {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (inMem *InMemoryStorage) GetBudgetByID(ctx context.Context, id int64) (tracker.Budget, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	b, ok := inMem.budgets[id]
	if !ok {
		return tracker.Budget{}, notFound("Budget not found")
	}
	return b, nil
}

func (inMem *InMemoryStorage) GetBudgetByCategory(ctx context.Context, category string) (tracker.Budget, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	for _, b := range inMem.budgets {
		if b.Category == category {
			return b, nil
		}
	}
	return tracker.Budget{}, notFound("Budget not found")
}

func (inMem *InMemoryStorage) UpdateBudget(ctx context.Context, b tracker.Budget) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	if _, ok := inMem.budgets[b.ID]; !ok {
		return notFound("Budget not found")
	}
	if inMem.categoryTaken(b.Category, b.ID) {
		return conflict("Budget for this category already exists")
	}
	inMem.budgets[b.ID] = b
	return nil
}

func (inMem *InMemoryStorage) DeleteBudget(ctx context.Context, id int64) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	delete(inMem.budgets, id)
	return nil
}

// --- BILLS --- //

func (inMem *InMemoryStorage) SaveBill(ctx context.Context, b tracker.Bill) (int64, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	b.ID = inMem.newID()
	inMem.bills[b.ID] = b
	return b.ID, nil
}

func (inMem *InMemoryStorage) GetAllBills(ctx context.Context) ([]tracker.Bill, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	result := make([]tracker.Bill, 0, len(inMem.bills))
	for _, b := range inMem.bills {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (inMem *InMemoryStorage) GetUnpaidBills(ctx context.Context) ([]tracker.Bill, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	result := []tracker.Bill{}
	for _, b := range inMem.bills {
		if !b.IsPaid {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DueDate.Equal(result[j].DueDate.Time) {
			return result[i].DueDate.Before(result[j].DueDate.Time)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (inMem *InMemoryStorage) GetBillByID(ctx context.Context, id int64) (tracker.Bill, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	b, ok := inMem.bills[id]
	if !ok {
		return tracker.Bill{}, notFound("Bill not found")
	}
	return b, nil
}

func (inMem *InMemoryStorage) UpdateBill(ctx context.Context, b tracker.Bill) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	if _, ok := inMem.bills[b.ID]; !ok {
		return notFound("Bill not found")
	}
	inMem.bills[b.ID] = b
	return nil
}

func (inMem *InMemoryStorage) ToggleBillStatus(ctx context.Context, id int64) (tracker.Bill, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	b, ok := inMem.bills[id]
	if !ok {
		return tracker.Bill{}, notFound("Bill not found")
	}
	b.IsPaid = !b.IsPaid
	inMem.bills[id] = b
	return b, nil
}

func (inMem *InMemoryStorage) DeleteBill(ctx context.Context, id int64) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	delete(inMem.bills, id)
	return nil
}

// --- SETTINGS --- //

func (inMem *InMemoryStorage) GetOrCreateSettings(ctx context.Context) (tracker.Settings, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	if inMem.settings == nil {
		defaults := tracker.DefaultSettings()
		inMem.settings = &defaults
	}
	return *inMem.settings, nil
}

func (inMem *InMemoryStorage) SaveSettings(ctx context.Context, st tracker.Settings) (tracker.Settings, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	st.ID = tracker.SettingsID
	inMem.settings = &st
	return st, nil
}
