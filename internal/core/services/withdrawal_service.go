package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// withdrawalService runs the withdrawal workflow. Every write operation holds
// mu for its whole duration and runs inside one store transaction, so no two
// operations interleave and none is applied partially.
type withdrawalService struct {
	BaseService
	mu             sync.Mutex
	txManager      portsrepo.TransactionManager
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade
	orders         portssvc.OrderSvcFacade
	settlement     portssvc.SettlementCalculatorSvc
	nowFn          func() time.Time
	newRequestID   func(now time.Time) string
	events         EventSink
}

// EventSink receives workflow events after they are committed.
type EventSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

type noopEventSink struct{}

func (noopEventSink) Enqueue(string, string, map[string]any) {}

// Workflow events. The system serves a single affiliate, so every event
// shares one distinct id.
const (
	EventRequestCreated  = "withdrawal_request_created"
	EventRequestApproved = "withdrawal_request_approved"
	EventRequestRejected = "withdrawal_request_rejected"

	affiliateDistinctID = "affiliate"
)

// WithdrawalServiceOption is a functional option for configuring the withdrawal service
type WithdrawalServiceOption func(*withdrawalService)

// WithWithdrawalClock overrides the clock used for request and approval times.
func WithWithdrawalClock(now func() time.Time) WithdrawalServiceOption {
	return func(s *withdrawalService) {
		s.nowFn = now
	}
}

// WithRequestIDGenerator overrides how new request ids are built.
func WithRequestIDGenerator(gen func(now time.Time) string) WithdrawalServiceOption {
	return func(s *withdrawalService) {
		s.newRequestID = gen
	}
}

// WithEventSink sends committed workflow events to sink.
func WithEventSink(sink EventSink) WithdrawalServiceOption {
	return func(s *withdrawalService) {
		if sink != nil {
			s.events = sink
		}
	}
}

// NewRequestID builds ids of the form WDR-20240315-1A2B3C4D.
func NewRequestID(now time.Time) string {
	suffix, err := utils.GenerateSecureRandomString(4)
	if err != nil {
		suffix = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	return fmt.Sprintf("WDR-%s-%s", now.Format("20060102"), strings.ToUpper(suffix))
}

// NewWithdrawalService creates a new withdrawal workflow service.
func NewWithdrawalService(
	txManager portsrepo.TransactionManager,
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade,
	orders portssvc.OrderSvcFacade,
	settlement portssvc.SettlementCalculatorSvc,
	options ...WithdrawalServiceOption,
) portssvc.WithdrawalSvcFacade {
	svc := &withdrawalService{
		txManager:      txManager,
		withdrawalRepo: withdrawalRepo,
		orders:         orders,
		settlement:     settlement,
		nowFn:          func() time.Time { return time.Now().UTC() },
		newRequestID:   NewRequestID,
		events:         noopEventSink{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

func (s *withdrawalService) CreateRequest(ctx context.Context) (*domain.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created domain.WithdrawalRequest
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		candidates, err := s.orders.ListOrders(ctx, domain.OrderFilter{Status: domain.WithdrawalUnwithdrawn})
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(candidates))
		total := decimal.Zero
		for _, o := range candidates {
			amount := s.settlement.AffiliateAmount(o)
			if !amount.IsPositive() {
				continue
			}
			ids = append(ids, o.OrderID)
			total = total.Add(amount)
		}
		if len(ids) == 0 {
			return apperrors.ErrNoEligibleOrders
		}

		now := s.nowFn()
		created = domain.WithdrawalRequest{
			RequestID:   s.newRequestID(now),
			RequestDate: now,
			TotalAmount: total,
			OrderIDs:    ids,
			Status:      domain.RequestPending,
		}

		if err := s.orders.ApplyWithdrawalTransition(ctx, domain.WithdrawalTransition{
			OrderIDs: ids,
			Status:   domain.WithdrawalPending,
		}); err != nil {
			return err
		}
		return s.withdrawalRepo.SaveRequest(ctx, created)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNoEligibleOrders) {
			s.LogWarn(ctx, err, "Withdrawal request not created")
			return nil, err
		}
		s.LogError(ctx, err, "Failed to create withdrawal request")
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	s.LogInfo(ctx, "Withdrawal request created",
		slog.String("request_id", created.RequestID),
		slog.Int("order_count", len(created.OrderIDs)),
		slog.String("total_amount", created.TotalAmount.String()))
	s.events.Enqueue(affiliateDistinctID, EventRequestCreated, map[string]any{
		"request_id":   created.RequestID,
		"order_count":  len(created.OrderIDs),
		"total_amount": created.TotalAmount.String(),
	})
	return &created, nil
}

func (s *withdrawalService) Approve(ctx context.Context, requestID string) (*domain.WithdrawalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.approveLocked(ctx, requestID)
}

func (s *withdrawalService) Reject(ctx context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejectLocked(ctx, requestID)
}

func (s *withdrawalService) BatchApprove(ctx context.Context, requestIDs []string) []domain.BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]domain.BatchResult, len(requestIDs))
	for i, id := range requestIDs {
		record, err := s.approveLocked(ctx, id)
		results[i] = domain.BatchResult{RequestID: id, Record: record, Err: err}
	}
	s.logBatch(ctx, "approve", results)
	return results
}

func (s *withdrawalService) BatchReject(ctx context.Context, requestIDs []string) []domain.BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]domain.BatchResult, len(requestIDs))
	for i, id := range requestIDs {
		results[i] = domain.BatchResult{RequestID: id, Err: s.rejectLocked(ctx, id)}
	}
	s.logBatch(ctx, "reject", results)
	return results
}

func (s *withdrawalService) GetRequest(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	req, err := s.withdrawalRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrRequestNotFound, requestID)
		}
		s.LogError(ctx, err, "Failed to find withdrawal request", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to find withdrawal request %s: %w", requestID, err)
	}
	return req, nil
}

func (s *withdrawalService) ListRequests(ctx context.Context, status domain.RequestStatus) ([]domain.WithdrawalRequest, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown request status '%s'", apperrors.ErrInvalidInput, status)
	}
	all, err := s.withdrawalRepo.ListRequests(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list withdrawal requests")
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	if status == "" {
		return all, nil
	}
	matched := make([]domain.WithdrawalRequest, 0, len(all))
	for _, r := range all {
		if r.Status == status {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *withdrawalService) ListHistory(ctx context.Context) ([]domain.WithdrawalRecord, error) {
	records, err := s.withdrawalRepo.ListRecords(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list withdrawal history")
		return nil, fmt.Errorf("failed to list withdrawal history: %w", err)
	}
	return records, nil
}

// approveLocked pays out one pending request. The caller holds mu.
func (s *withdrawalService) approveLocked(ctx context.Context, requestID string) (*domain.WithdrawalRecord, error) {
	var record domain.WithdrawalRecord
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.loadPending(ctx, requestID)
		if err != nil {
			return err
		}
		orders, err := s.orders.GetOrdersByIDs(ctx, req.OrderIDs)
		if err != nil {
			return err
		}

		// Amounts are recomputed from the orders, not taken from the request snapshot.
		amounts := make(map[string]decimal.Decimal, len(req.OrderIDs))
		total := decimal.Zero
		for _, id := range req.OrderIDs {
			amount := s.settlement.AffiliateAmount(orders[id])
			amounts[id] = amount
			total = total.Add(amount)
		}

		now := s.nowFn()
		if err := s.orders.ApplyWithdrawalTransition(ctx, domain.WithdrawalTransition{
			OrderIDs: req.OrderIDs,
			Status:   domain.WithdrawalWithdrawn,
			At:       &now,
			Amounts:  amounts,
		}); err != nil {
			return err
		}
		if err := s.withdrawalRepo.UpdateRequestStatus(ctx, requestID, domain.RequestApproved); err != nil {
			return err
		}

		record = domain.WithdrawalRecord{
			RecordID:     req.RequestID,
			ApprovedTime: now,
			TotalAmount:  total,
			OrderCount:   len(req.OrderIDs),
		}
		return s.withdrawalRepo.AppendRecord(ctx, record)
	})
	if err != nil {
		s.logOutcome(ctx, err, "Withdrawal request not approved", requestID)
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal request approved",
		slog.String("request_id", requestID),
		slog.String("total_amount", record.TotalAmount.String()),
		slog.Int("order_count", record.OrderCount))
	s.events.Enqueue(affiliateDistinctID, EventRequestApproved, map[string]any{
		"request_id":   requestID,
		"order_count":  record.OrderCount,
		"total_amount": record.TotalAmount.String(),
	})
	return &record, nil
}

// rejectLocked returns a pending request's orders to UNWITHDRAWN. The caller holds mu.
func (s *withdrawalService) rejectLocked(ctx context.Context, requestID string) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.loadPending(ctx, requestID)
		if err != nil {
			return err
		}
		if err := s.orders.ApplyWithdrawalTransition(ctx, domain.WithdrawalTransition{
			OrderIDs: req.OrderIDs,
			Status:   domain.WithdrawalUnwithdrawn,
		}); err != nil {
			return err
		}
		return s.withdrawalRepo.UpdateRequestStatus(ctx, requestID, domain.RequestRejected)
	})
	if err != nil {
		s.logOutcome(ctx, err, "Withdrawal request not rejected", requestID)
		return err
	}

	s.LogInfo(ctx, "Withdrawal request rejected", slog.String("request_id", requestID))
	s.events.Enqueue(affiliateDistinctID, EventRequestRejected, map[string]any{"request_id": requestID})
	return nil
}

func (s *withdrawalService) loadPending(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	req, err := s.withdrawalRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrRequestNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to load withdrawal request %s: %w", requestID, err)
	}
	if !req.IsPending() {
		return nil, fmt.Errorf("%w: %s is %s", apperrors.ErrRequestNotPending, requestID, req.Status)
	}
	return req, nil
}

// logOutcome logs business rejections as warnings and everything else as errors.
func (s *withdrawalService) logOutcome(ctx context.Context, err error, msg, requestID string) {
	if errors.Is(err, apperrors.ErrRequestNotFound) || errors.Is(err, apperrors.ErrRequestNotPending) {
		s.LogWarn(ctx, err, msg, slog.String("request_id", requestID))
		return
	}
	s.LogError(ctx, err, msg, slog.String("request_id", requestID))
}

func (s *withdrawalService) logBatch(ctx context.Context, action string, results []domain.BatchResult) {
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	s.LogInfo(ctx, "Batch processed",
		slog.String("action", action),
		slog.Int("requested", len(results)),
		slog.Int("failed", failed))
}
