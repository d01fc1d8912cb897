package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository creates a new in-memory repository for orders.
func NewOrderRepository(store *Store) portsrepo.OrderRepositoryFacade {
	return &orderRepository{store: store}
}

func (r *orderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	return r.store.write(ctx, func(st *state) error {
		if _, exists := st.orderIndex[order.OrderID]; exists {
			return fmt.Errorf("%w: order %s", apperrors.ErrDuplicate, order.OrderID)
		}
		st.orderIndex[order.OrderID] = len(st.orders)
		st.orders = append(st.orders, order)
		return nil
	})
}

func (r *orderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var found domain.Order
	err := r.store.read(ctx, func(st *state) error {
		idx, ok := st.orderIndex[orderID]
		if !ok {
			return apperrors.ErrNotFound
		}
		found = st.orders[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *orderRepository) FindOrdersByIDs(ctx context.Context, orderIDs []string) (map[string]domain.Order, error) {
	found := make(map[string]domain.Order, len(orderIDs))
	err := r.store.read(ctx, func(st *state) error {
		for _, id := range orderIDs {
			if idx, ok := st.orderIndex[id]; ok {
				found[id] = st.orders[idx]
			}
		}
		return nil
	})
	return found, err
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.store.read(ctx, func(st *state) error {
		orders = make([]domain.Order, len(st.orders))
		copy(orders, st.orders)
		return nil
	})
	return orders, err
}

// UpdateWithdrawalState replaces the withdrawal fields of every given order;
// it fails without writing anything if one of them does not exist.
func (r *orderRepository) UpdateWithdrawalState(ctx context.Context, orders []domain.Order) error {
	return r.store.write(ctx, func(st *state) error {
		for _, o := range orders {
			if _, ok := st.orderIndex[o.OrderID]; !ok {
				return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, o.OrderID)
			}
		}
		for _, o := range orders {
			current := &st.orders[st.orderIndex[o.OrderID]]
			current.WithdrawalStatus = o.WithdrawalStatus
			current.WithdrawnAmount = o.WithdrawnAmount
			current.WithdrawalTime = o.WithdrawalTime
		}
		return nil
	})
}
