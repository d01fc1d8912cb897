package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
)

type withdrawalRepository struct {
	store *Store
}

// NewWithdrawalRepository creates a new in-memory repository for withdrawal requests and history.
func NewWithdrawalRepository(store *Store) portsrepo.WithdrawalRepositoryFacade {
	return &withdrawalRepository{store: store}
}

func (r *withdrawalRepository) SaveRequest(ctx context.Context, request domain.WithdrawalRequest) error {
	return r.store.write(ctx, func(st *state) error {
		if _, exists := st.reqIndex[request.RequestID]; exists {
			return fmt.Errorf("%w: withdrawal request %s", apperrors.ErrDuplicate, request.RequestID)
		}
		st.reqIndex[request.RequestID] = len(st.requests)
		st.requests = append(st.requests, copyRequest(request))
		return nil
	})
}

func (r *withdrawalRepository) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error {
	return r.store.write(ctx, func(st *state) error {
		idx, ok := st.reqIndex[requestID]
		if !ok {
			return apperrors.ErrNotFound
		}
		st.requests[idx].Status = status
		return nil
	})
}

func (r *withdrawalRepository) AppendRecord(ctx context.Context, record domain.WithdrawalRecord) error {
	return r.store.write(ctx, func(st *state) error {
		for _, existing := range st.records {
			if existing.RecordID == record.RecordID {
				return fmt.Errorf("%w: withdrawal record %s", apperrors.ErrDuplicate, record.RecordID)
			}
		}
		st.records = append(st.records, record)
		return nil
	})
}

func (r *withdrawalRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	var found domain.WithdrawalRequest
	err := r.store.read(ctx, func(st *state) error {
		idx, ok := st.reqIndex[requestID]
		if !ok {
			return apperrors.ErrNotFound
		}
		found = copyRequest(st.requests[idx])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *withdrawalRepository) ListRequests(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	var requests []domain.WithdrawalRequest
	err := r.store.read(ctx, func(st *state) error {
		requests = make([]domain.WithdrawalRequest, len(st.requests))
		for i, req := range st.requests {
			requests[i] = copyRequest(req)
		}
		return nil
	})
	return requests, err
}

func (r *withdrawalRepository) ListRecords(ctx context.Context) ([]domain.WithdrawalRecord, error) {
	var records []domain.WithdrawalRecord
	err := r.store.read(ctx, func(st *state) error {
		records = make([]domain.WithdrawalRecord, len(st.records))
		copy(records, st.records)
		return nil
	})
	return records, err
}
