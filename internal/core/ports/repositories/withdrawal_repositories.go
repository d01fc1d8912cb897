package repositories

import (
	"context"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
)

// WithdrawalReader defines read operations for withdrawal requests and history
type WithdrawalReader interface {
	// FindRequestByID retrieves a request; apperrors.ErrNotFound if absent.
	FindRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error)

	// ListRequests returns every request in creation order.
	ListRequests(ctx context.Context) ([]domain.WithdrawalRequest, error)

	// ListRecords returns the withdrawal history in the order it was written.
	ListRecords(ctx context.Context) ([]domain.WithdrawalRecord, error)
}

// WithdrawalWriter defines write operations for withdrawal requests and history
type WithdrawalWriter interface {
	SaveRequest(ctx context.Context, request domain.WithdrawalRequest) error
	UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error
	AppendRecord(ctx context.Context, record domain.WithdrawalRecord) error
}

// WithdrawalRepositoryFacade combines all withdrawal-related repository interfaces
type WithdrawalRepositoryFacade interface {
	WithdrawalReader
	WithdrawalWriter
}
