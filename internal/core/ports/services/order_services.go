package services

import (
	"context"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	// GetOrder retrieves a single order.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// GetOrdersByIDs retrieves every listed order; apperrors.ErrUnknownOrderID if one is missing.
	GetOrdersByIDs(ctx context.Context, orderIDs []string) (map[string]domain.Order, error)

	// ListOrders returns the orders matching filter in insertion order.
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// Summary aggregates the affiliate's settled, available, pending and withdrawn amounts.
	Summary(ctx context.Context, filter domain.OrderFilter) (*domain.WithdrawalSummary, error)
}

// OrderWriterSvc defines order placement
type OrderWriterSvc interface {
	// CreateOrder validates and registers a new order.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
}

// OrderTransitionSvc is the single entry point for changing an order's withdrawal state.
type OrderTransitionSvc interface {
	// ApplyWithdrawalTransition changes the withdrawal state of exactly the
	// listed orders, or of none of them if any id is unknown or any move is
	// not allowed.
	ApplyWithdrawalTransition(ctx context.Context, transition domain.WithdrawalTransition) error
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
	OrderTransitionSvc
}
