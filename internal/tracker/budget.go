package tracker

import (
	"context"
	"fmt"
	"strings"

	appErrors "github.com/moneymanager/money_manager/errors"
	"github.com/shopspring/decimal"
)

type BudgetRequest struct {
	Category        string
	AllocatedAmount float64
	SpentAmount     float64
}

type SpendRequest struct {
	Category string
	Amount   float64
}

// Recalculate derives the remaining amount and the rounded percentage spent.
// The remaining amount is the exact difference and is not floored, a negative value means overspend.
func Recalculate(allocatedAmount float64, spentAmount float64) (remainingAmount float64, percentageSpent int) {
	allocated := decimal.NewFromFloat(allocatedAmount)
	spent := decimal.NewFromFloat(spentAmount)

	remainingAmount = allocated.Sub(spent).InexactFloat64()

	if allocated.IsPositive() {
		// Halves round toward positive infinity, so -0.5 becomes 0.
		percentageSpent = int(spent.Div(allocated).Mul(hundred).Add(half).Floor().IntPart())
	}
	return remainingAmount, percentageSpent
}

func (b *Budget) recalculate() {
	b.RemainingAmount, b.PercentageSpent = Recalculate(b.AllocatedAmount, b.SpentAmount)
}

func (r BudgetRequest) validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Budget category is required")
	}
	return nil
}

func (mt *MoneyTracker) GetAllBudgets(ctx context.Context) ([]Budget, error) {
	budgets, err := mt.storage.GetAllBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	return budgets, nil
}

func (mt *MoneyTracker) SaveBudget(ctx context.Context, req BudgetRequest) (Budget, error) {
	if err := req.validate(); err != nil {
		return Budget{}, err
	}

	budget := Budget{
		Category:        strings.TrimSpace(req.Category),
		AllocatedAmount: req.AllocatedAmount,
		SpentAmount:     req.SpentAmount,
	}
	budget.recalculate()

	id, err := mt.storage.SaveBudget(ctx, budget)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to save budget: %w", err)
	}
	budget.ID = id
	return budget, nil
}

// UpdateBudget overwrites every source field of budget id and recomputes the derived ones.
func (mt *MoneyTracker) UpdateBudget(ctx context.Context, id int64, req BudgetRequest) (Budget, error) {
	if err := req.validate(); err != nil {
		return Budget{}, err
	}

	budget, err := mt.storage.GetBudgetByID(ctx, id)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get budget: %w", err)
	}

	budget.Category = strings.TrimSpace(req.Category)
	budget.AllocatedAmount = req.AllocatedAmount
	budget.SpentAmount = req.SpentAmount
	budget.recalculate()

	if err := mt.storage.UpdateBudget(ctx, budget); err != nil {
		return Budget{}, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

// AddSpentToCategory adds req.Amount to the spent amount of the budget for req.Category.
func (mt *MoneyTracker) AddSpentToCategory(ctx context.Context, req SpendRequest) (Budget, error) {
	budget, err := mt.storage.GetBudgetByCategory(ctx, strings.TrimSpace(req.Category))
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get budget by category: %w", err)
	}

	budget.SpentAmount = decimal.NewFromFloat(budget.SpentAmount).
		Add(decimal.NewFromFloat(req.Amount)).
		InexactFloat64()
	budget.recalculate()

	if err := mt.storage.UpdateBudget(ctx, budget); err != nil {
		return Budget{}, fmt.Errorf("failed to update budget spent amount: %w", err)
	}
	return budget, nil
}

func (mt *MoneyTracker) DeleteBudget(ctx context.Context, id int64) error {
	if err := mt.storage.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
