package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/adapters/database/memory"
	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string) domain.Order {
	return domain.Order{
		OrderID:          id,
		StudentName:      "Student " + id,
		CourseName:       "Course",
		Amount:           decimal.NewFromInt(10000),
		Scenario:         domain.ScenarioPass,
		OrderDate:        time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		WithdrawalStatus: domain.WithdrawalUnwithdrawn,
		WithdrawnAmount:  decimal.Zero,
	}
}

func TestOrderRepository_SaveFindList(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())

	for _, id := range []string{"ORD-3", "ORD-1", "ORD-2"} {
		require.NoError(t, repos.OrderRepo.SaveOrder(ctx, testOrder(id)))
	}

	err := repos.OrderRepo.SaveOrder(ctx, testOrder("ORD-1"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	found, err := repos.OrderRepo.FindOrderByID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", found.OrderID)

	_, err = repos.OrderRepo.FindOrderByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := repos.OrderRepo.ListOrders(ctx)
	require.NoError(t, err)
	ids := make([]string, len(list))
	for i, o := range list {
		ids[i] = o.OrderID
	}
	assert.Equal(t, []string{"ORD-3", "ORD-1", "ORD-2"}, ids, "orders keep insertion order")

	byIDs, err := repos.OrderRepo.FindOrdersByIDs(ctx, []string{"ORD-2", "missing"})
	require.NoError(t, err)
	assert.Len(t, byIDs, 1)
	assert.Contains(t, byIDs, "ORD-2")
}

func TestOrderRepository_UpdateWithdrawalStateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	require.NoError(t, repos.OrderRepo.SaveOrder(ctx, testOrder("ORD-1")))

	pending := testOrder("ORD-1")
	pending.WithdrawalStatus = domain.WithdrawalPending
	ghost := testOrder("ORD-404")
	ghost.WithdrawalStatus = domain.WithdrawalPending

	err := repos.OrderRepo.UpdateWithdrawalState(ctx, []domain.Order{pending, ghost})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	stored, err := repos.OrderRepo.FindOrderByID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalUnwithdrawn, stored.WithdrawalStatus)

	require.NoError(t, repos.OrderRepo.UpdateWithdrawalState(ctx, []domain.Order{pending}))
	stored, err = repos.OrderRepo.FindOrderByID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalPending, stored.WithdrawalStatus)
}

func TestStore_WithinTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := memory.NewRepositoryProvider(store)
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repos.OrderRepo.SaveOrder(ctx, testOrder("ORD-1")))
		require.NoError(t, repos.WithdrawalRepo.SaveRequest(ctx, domain.WithdrawalRequest{
			RequestID: "WDR-1", OrderIDs: []string{"ORD-1"}, Status: domain.RequestPending,
		}))

		// Reads inside the transaction see its own writes.
		_, err := repos.OrderRepo.FindOrderByID(ctx, "ORD-1")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	orders, err := repos.OrderRepo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	_, err = repos.WithdrawalRepo.FindRequestByID(ctx, "WDR-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_WithinTransactionCommitsAndNests(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := memory.NewRepositoryProvider(store)

	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repos.OrderRepo.SaveOrder(ctx, testOrder("ORD-1")); err != nil {
			return err
		}
		return store.WithinTransaction(ctx, func(ctx context.Context) error {
			return repos.OrderRepo.SaveOrder(ctx, testOrder("ORD-2"))
		})
	})
	require.NoError(t, err)

	orders, err := repos.OrderRepo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestWithdrawalRepository_RequestsAndRecords(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())

	ids := []string{"ORD-1", "ORD-2"}
	req := domain.WithdrawalRequest{
		RequestID:   "WDR-1",
		RequestDate: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(12600),
		OrderIDs:    ids,
		Status:      domain.RequestPending,
	}
	require.NoError(t, repos.WithdrawalRepo.SaveRequest(ctx, req))
	assert.ErrorIs(t, repos.WithdrawalRepo.SaveRequest(ctx, req), apperrors.ErrDuplicate)

	ids[0] = "mutated"
	stored, err := repos.WithdrawalRepo.FindRequestByID(ctx, "WDR-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-1", "ORD-2"}, stored.OrderIDs, "stored order ids are isolated from the caller's slice")

	require.NoError(t, repos.WithdrawalRepo.UpdateRequestStatus(ctx, "WDR-1", domain.RequestApproved))
	assert.ErrorIs(t, repos.WithdrawalRepo.UpdateRequestStatus(ctx, "nope", domain.RequestApproved), apperrors.ErrNotFound)

	list, err := repos.WithdrawalRepo.ListRequests(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.RequestApproved, list[0].Status)

	first := domain.WithdrawalRecord{RecordID: "WDR-0", TotalAmount: decimal.NewFromInt(1), OrderCount: 1}
	second := domain.WithdrawalRecord{RecordID: "WDR-1", TotalAmount: decimal.NewFromInt(2), OrderCount: 2}
	require.NoError(t, repos.WithdrawalRepo.AppendRecord(ctx, first))
	require.NoError(t, repos.WithdrawalRepo.AppendRecord(ctx, second))
	assert.ErrorIs(t, repos.WithdrawalRepo.AppendRecord(ctx, first), apperrors.ErrDuplicate)

	records, err := repos.WithdrawalRepo.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "WDR-0", records[0].RecordID)
	assert.Equal(t, "WDR-1", records[1].RecordID)
}

func TestStore_ConcurrentWritesAreSerialized(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repos.OrderRepo.SaveOrder(ctx, testOrder(fmt.Sprintf("ORD-%d", i)))
		}(i)
	}
	wg.Wait()

	orders, err := repos.OrderRepo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 50)
}
