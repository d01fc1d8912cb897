package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
	"github.com/shopspring/decimal"
)

// orderService is the order registry: it owns the order collection and is
// the only component that changes an order's withdrawal state.
type orderService struct {
	BaseService
	orderRepo  portsrepo.OrderRepositoryFacade
	settlement portssvc.SettlementCalculatorSvc
	nowFn      func() time.Time
}

// OrderServiceOption is a functional option for configuring the order service
type OrderServiceOption func(*orderService)

// WithOrderClock overrides the clock used to default order dates.
func WithOrderClock(now func() time.Time) OrderServiceOption {
	return func(s *orderService) {
		s.nowFn = now
	}
}

// NewOrderService creates a new order service with the provided options
func NewOrderService(repo portsrepo.OrderRepositoryFacade, settlement portssvc.SettlementCalculatorSvc, options ...OrderServiceOption) portssvc.OrderSvcFacade {
	svc := &orderService{
		orderRepo:  repo,
		settlement: settlement,
		nowFn:      func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	order := domain.Order{
		OrderID:          strings.TrimSpace(req.OrderID),
		StudentName:      req.StudentName,
		CourseName:       req.CourseName,
		Amount:           req.Amount,
		Scenario:         req.Scenario,
		OrderDate:        s.nowFn(),
		SettlementTime:   req.SettlementTime,
		WithdrawalStatus: domain.WithdrawalUnwithdrawn,
		WithdrawnAmount:  decimal.Zero,
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}

	if err := order.Validate(); err != nil {
		s.LogWarn(ctx, err, "Rejected order", slog.String("order_id", order.OrderID))
		return nil, err
	}
	// The order must also be settleable under the active policy.
	if err := s.settlement.Policy().ParamsFor(order.Amount, order.Scenario).Validate(); err != nil {
		s.LogWarn(ctx, err, "Rejected order", slog.String("order_id", order.OrderID))
		return nil, err
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("order %s: %w", order.OrderID, err)
		}
		s.LogError(ctx, err, "Failed to save order", slog.String("order_id", order.OrderID))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.LogInfo(ctx, "Order created",
		slog.String("order_id", order.OrderID),
		slog.String("scenario", string(order.Scenario)),
		slog.String("amount", order.Amount.String()))
	return &order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownOrderID, orderID)
		}
		s.LogError(ctx, err, "Failed to find order", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return order, nil
}

func (s *orderService) GetOrdersByIDs(ctx context.Context, orderIDs []string) (map[string]domain.Order, error) {
	found, err := s.orderRepo.FindOrdersByIDs(ctx, orderIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find orders", slog.Int("count", len(orderIDs)))
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	for _, id := range orderIDs {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownOrderID, id)
		}
	}
	return found, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	all, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	matched := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if filter.Matches(o) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (s *orderService) Summary(ctx context.Context, filter domain.OrderFilter) (*domain.WithdrawalSummary, error) {
	orders, err := s.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &domain.WithdrawalSummary{
		TotalSettled:        decimal.Zero,
		AvailableToWithdraw: decimal.Zero,
		PendingAudit:        decimal.Zero,
		TotalWithdrawn:      decimal.Zero,
		OrderCount:          len(orders),
	}
	for _, o := range orders {
		settled := s.settlement.AffiliateAmount(o)
		summary.TotalSettled = summary.TotalSettled.Add(settled)
		switch o.WithdrawalStatus {
		case domain.WithdrawalUnwithdrawn:
			summary.AvailableToWithdraw = summary.AvailableToWithdraw.Add(settled)
		case domain.WithdrawalPending:
			summary.PendingAudit = summary.PendingAudit.Add(settled)
		case domain.WithdrawalWithdrawn:
			summary.TotalWithdrawn = summary.TotalWithdrawn.Add(o.WithdrawnAmount)
		}
	}
	return summary, nil
}

func (s *orderService) ApplyWithdrawalTransition(ctx context.Context, transition domain.WithdrawalTransition) error {
	if len(transition.OrderIDs) == 0 {
		return fmt.Errorf("%w: transition lists no orders", apperrors.ErrInvalidInput)
	}
	if !transition.Status.IsValid() {
		return fmt.Errorf("%w: unknown withdrawal status '%s'", apperrors.ErrInvalidInput, transition.Status)
	}

	found, err := s.GetOrdersByIDs(ctx, transition.OrderIDs)
	if err != nil {
		return err
	}

	// Every move is checked before anything is written.
	seen := make(map[string]struct{}, len(transition.OrderIDs))
	updated := make([]domain.Order, 0, len(transition.OrderIDs))
	for _, id := range transition.OrderIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		next, err := transition.Apply(found[id])
		if err != nil {
			s.LogWarn(ctx, err, "Rejected withdrawal transition", slog.String("order_id", id))
			return err
		}
		updated = append(updated, next)
	}

	if err := s.orderRepo.UpdateWithdrawalState(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update withdrawal state", slog.Int("count", len(updated)))
		return fmt.Errorf("failed to update withdrawal state: %w", err)
	}

	s.LogDebug(ctx, "Applied withdrawal transition",
		slog.String("status", string(transition.Status)),
		slog.Int("count", len(updated)))
	return nil
}
