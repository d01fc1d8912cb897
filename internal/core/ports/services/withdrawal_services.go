package services

import (
	"context"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
)

// WithdrawalWorkflowSvc drives withdrawal requests through audit.
type WithdrawalWorkflowSvc interface {
	// CreateRequest bundles every unwithdrawn order with a positive settled
	// share into a new pending request.
	CreateRequest(ctx context.Context) (*domain.WithdrawalRequest, error)

	// Approve pays out a pending request and appends a history record.
	Approve(ctx context.Context, requestID string) (*domain.WithdrawalRecord, error)

	// Reject returns a pending request's orders to UNWITHDRAWN.
	Reject(ctx context.Context, requestID string) error

	// BatchApprove approves each id independently and reports per-id results.
	BatchApprove(ctx context.Context, requestIDs []string) []domain.BatchResult

	// BatchReject rejects each id independently and reports per-id results.
	BatchReject(ctx context.Context, requestIDs []string) []domain.BatchResult
}

// WithdrawalReaderSvc defines read operations for requests and history
type WithdrawalReaderSvc interface {
	GetRequest(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error)

	// ListRequests returns requests in creation order; an empty status lists all.
	ListRequests(ctx context.Context, status domain.RequestStatus) ([]domain.WithdrawalRequest, error)

	// ListHistory returns the approval records in the order they were written.
	ListHistory(ctx context.Context) ([]domain.WithdrawalRecord, error)
}

// WithdrawalSvcFacade combines all withdrawal-related service interfaces
type WithdrawalSvcFacade interface {
	WithdrawalWorkflowSvc
	WithdrawalReaderSvc
}
