package tracker

import (
	"context"
	"fmt"
	"strings"

	appErrors "github.com/moneymanager/money_manager/errors"
)

type BillRequest struct {
	Description string
	Amount      float64
	DueDate     Date
	IsPaid      bool
	Category    string
}

func (r BillRequest) validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Bill description is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Bill category is required")
	}
	if r.DueDate.IsZero() {
		return appErrors.New(appErrors.ErrInvalidInput, "Bill due date is required")
	}
	return nil
}

func (mt *MoneyTracker) GetAllBills(ctx context.Context) ([]Bill, error) {
	bills, err := mt.storage.GetAllBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}
	return bills, nil
}

// ListUnpaidBills returns unpaid bills, earliest due date first.
func (mt *MoneyTracker) ListUnpaidBills(ctx context.Context) ([]Bill, error) {
	bills, err := mt.storage.GetUnpaidBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get unpaid bills: %w", err)
	}
	return bills, nil
}

func (mt *MoneyTracker) SaveBill(ctx context.Context, req BillRequest) (Bill, error) {
	if err := req.validate(); err != nil {
		return Bill{}, err
	}

	bill := Bill{
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		IsPaid:      req.IsPaid,
		Category:    strings.TrimSpace(req.Category),
	}

	id, err := mt.storage.SaveBill(ctx, bill)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to save bill: %w", err)
	}
	bill.ID = id
	return bill, nil
}

func (mt *MoneyTracker) UpdateBill(ctx context.Context, id int64, req BillRequest) (Bill, error) {
	if err := req.validate(); err != nil {
		return Bill{}, err
	}

	bill, err := mt.storage.GetBillByID(ctx, id)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get bill: %w", err)
	}

	bill.Description = strings.TrimSpace(req.Description)
	bill.Amount = req.Amount
	bill.DueDate = req.DueDate
	bill.IsPaid = req.IsPaid
	bill.Category = strings.TrimSpace(req.Category)

	if err := mt.storage.UpdateBill(ctx, bill); err != nil {
		return Bill{}, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, nil
}

// ToggleBillStatus flips the paid flag; calling it twice restores the original state.
func (mt *MoneyTracker) ToggleBillStatus(ctx context.Context, id int64) (Bill, error) {
	bill, err := mt.storage.ToggleBillStatus(ctx, id)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to toggle bill status: %w", err)
	}
	return bill, nil
}

func (mt *MoneyTracker) DeleteBill(ctx context.Context, id int64) error {
	if err := mt.storage.DeleteBill(ctx, id); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}
