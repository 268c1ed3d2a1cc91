package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/moneymanager/money_manager/internal/config"
	"github.com/moneymanager/money_manager/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStorage(t *testing.T) {
	runStorageTests(t, func(t *testing.T) tracker.Storage {
		return NewInMemoryStorage()
	})
}

func TestInMemoryStorageType(t *testing.T) {
	require.Equal(t, config.StorageMemory, NewInMemoryStorage().GetStorageType())
}

func TestInMemoryConcurrentToggle(t *testing.T) {
	store := NewInMemoryStorage()
	ctx := context.Background()

	id, err := store.SaveBill(ctx, tracker.Bill{Description: "Rent", DueDate: tracker.NewDate(2025, time.March, 1), Category: "Housing"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ToggleBillStatus(ctx, id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// An even number of flips lands on the starting state.
	bill, err := store.GetBillByID(ctx, id)
	require.NoError(t, err)
	require.False(t, bill.IsPaid)
}
