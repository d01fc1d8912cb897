package repositories

import (
	"context"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a single order; apperrors.ErrNotFound if absent.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// FindOrdersByIDs retrieves the orders that exist among orderIDs, keyed by id.
	FindOrdersByIDs(ctx context.Context, orderIDs []string) (map[string]domain.Order, error)

	// ListOrders returns every order in insertion order.
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder inserts a new order; apperrors.ErrDuplicate if the id is taken.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateWithdrawalState persists the withdrawal fields of the given orders.
	UpdateWithdrawalState(ctx context.Context, orders []domain.Order) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
