package tracker

import (
	"context"
	"fmt"
	"strings"

	appErrors "github.com/moneymanager/money_manager/errors"
	"github.com/moneymanager/money_manager/internal/auth"
)

const RecentTransactionsLimit = 10

type MoneyTracker struct {
	storage     Storage
	StorageType string
}

func NewMoneyTracker(s Storage) *MoneyTracker {
	return &MoneyTracker{
		storage:     s,
		StorageType: s.GetStorageType(),
	}
}

// Storage is the ledger store. Lookups of missing rows return a NOT FOUND ErrorResponse,
// unique violations a CONFLICT one.
type Storage interface {
	SaveUser(ctx context.Context, user auth.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (auth.User, error)
	GetUserByUserName(ctx context.Context, username string) (auth.User, error)
	IsUserNameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, user auth.User) error

	SaveTransaction(ctx context.Context, t Transaction) (int64, error)
	GetAllTransactions(ctx context.Context) ([]Transaction, error)
	GetRecentTransactions(ctx context.Context, limit int) ([]Transaction, error)

	SaveBudget(ctx context.Context, b Budget) (int64, error)
	GetAllBudgets(ctx context.Context) ([]Budget, error)
	GetBudgetByID(ctx context.Context, id int64) (Budget, error)
	GetBudgetByCategory(ctx context.Context, category string) (Budget, error)
	UpdateBudget(ctx context.Context, b Budget) error
	DeleteBudget(ctx context.Context, id int64) error

	SaveBill(ctx context.Context, b Bill) (int64, error)
	GetAllBills(ctx context.Context) ([]Bill, error)
	GetUnpaidBills(ctx context.Context) ([]Bill, error)
	GetBillByID(ctx context.Context, id int64) (Bill, error)
	UpdateBill(ctx context.Context, b Bill) error
	ToggleBillStatus(ctx context.Context, id int64) (Bill, error)
	DeleteBill(ctx context.Context, id int64) error

	GetOrCreateSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) (Settings, error)

	GetStorageType() string
}

// USERS:

func (mt *MoneyTracker) Register(ctx context.Context, newUser auth.NewUser) (auth.User, error) {
	if err := newUser.ValidateUserFields(); err != nil {
		return auth.User{}, err
	}
	userName := strings.TrimSpace(newUser.UserName)
	email := strings.TrimSpace(newUser.Email)

	isUserNameTaken, err := mt.storage.IsUserNameTaken(ctx, userName)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to check username availability: %w", err)
	}
	if isUserNameTaken {
		return auth.User{}, appErrors.New(appErrors.ErrConflict, "Username already exists")
	}

	isEmailTaken, err := mt.storage.IsEmailTaken(ctx, email)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to check email availability: %w", err)
	}
	if isEmailTaken {
		return auth.User{}, appErrors.New(appErrors.ErrConflict, "Email already exists")
	}

	hashedPassword, err := auth.HashPassword(newUser.PasswordPlain)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := auth.User{
		UserName:       userName,
		Email:          email,
		PasswordHashed: hashedPassword,
	}

	id, err := mt.storage.SaveUser(ctx, user)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to register: %w", err)
	}
	user.ID = id
	return user, nil
}

// Login never tells an unknown username apart from a wrong password.
func (mt *MoneyTracker) Login(ctx context.Context, credentials auth.UserCredentialsPure) (auth.User, error) {
	invalid := appErrors.New(appErrors.ErrAuth, "Invalid username or password")

	user, err := mt.storage.GetUserByUserName(ctx, strings.TrimSpace(credentials.UserName))
	if err != nil {
		if appErrors.IsCode(err, appErrors.ErrNotFound) {
			auth.VerifyUser(nil, credentials.PasswordPlain)
			return auth.User{}, invalid
		}
		return auth.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.VerifyUser(&user, credentials.PasswordPlain) {
		return auth.User{}, invalid
	}
	return user, nil
}

func (mt *MoneyTracker) UpdateCredentials(ctx context.Context, userID int64, fields auth.UpdateCredentials) (auth.User, error) {
	user, err := mt.storage.GetUserByID(ctx, userID)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	newUserName := strings.TrimSpace(fields.NewUserName)
	if newUserName != "" {
		existing, err := mt.storage.GetUserByUserName(ctx, newUserName)
		switch {
		case err == nil && existing.ID != userID:
			return auth.User{}, appErrors.New(appErrors.ErrConflict, "Username already taken")
		case err != nil && !appErrors.IsCode(err, appErrors.ErrNotFound):
			return auth.User{}, fmt.Errorf("failed to check username availability: %w", err)
		}
		user.UserName = newUserName
	}

	if fields.NewPasswordPlain != "" {
		hashedPassword, err := auth.HashPassword(fields.NewPasswordPlain)
		if err != nil {
			return auth.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHashed = hashedPassword
	}

	if err := mt.storage.UpdateUser(ctx, user); err != nil {
		return auth.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// TRANSACTIONS:

type TransactionRequest struct {
	Description string
	Category    string
	Date        Date
	Amount      float64
	Type        string
}

func (mt *MoneyTracker) SaveTransaction(ctx context.Context, req TransactionRequest) (Transaction, error) {
	tType := strings.ToUpper(strings.TrimSpace(req.Type))
	if tType != TypeIncome && tType != TypeExpense {
		return Transaction{}, appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("invalid transaction type: '%s', allowed types are INCOME and EXPENSE", req.Type))
	}
	if strings.TrimSpace(req.Description) == "" {
		return Transaction{}, appErrors.New(appErrors.ErrInvalidInput, "Transaction description is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return Transaction{}, appErrors.New(appErrors.ErrInvalidInput, "Transaction category is required")
	}
	if req.Date.IsZero() {
		return Transaction{}, appErrors.New(appErrors.ErrInvalidInput, "Transaction date is required")
	}

	txn := Transaction{
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Date:        req.Date,
		Amount:      req.Amount,
		Type:        tType,
	}

	id, err := mt.storage.SaveTransaction(ctx, txn)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to save transaction: %w", err)
	}
	txn.ID = id
	return txn, nil
}

func (mt *MoneyTracker) GetAllTransactions(ctx context.Context) ([]Transaction, error) {
	ts, err := mt.storage.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return ts, nil
}

func (mt *MoneyTracker) GetRecentTransactions(ctx context.Context) ([]Transaction, error) {
	ts, err := mt.storage.GetRecentTransactions(ctx, RecentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return ts, nil
}
