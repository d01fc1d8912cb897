package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/escrow_settlement_app/internal/models"
	"github.com/SscSPs/escrow_settlement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxWithdrawalRepository struct {
	store *Store
}

// NewWithdrawalRepository creates a new repository for withdrawal requests and history.
func NewWithdrawalRepository(store *Store) portsrepo.WithdrawalRepositoryFacade {
	return &PgxWithdrawalRepository{store: store}
}

func (r *PgxWithdrawalRepository) SaveRequest(ctx context.Context, request domain.WithdrawalRequest) error {
	query := `
		INSERT INTO withdrawal_requests (request_id, request_date, total_amount, order_ids, status)
		VALUES ($1, $2, $3, $4, $5);
	`
	m := mapping.ToModelWithdrawalRequest(request)
	_, err := r.store.conn(ctx).Exec(ctx, query,
		m.RequestID,
		m.RequestDate,
		m.TotalAmount,
		m.OrderIDs,
		m.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: withdrawal request %s", apperrors.ErrDuplicate, request.RequestID)
		}
		return fmt.Errorf("failed to save withdrawal request %s: %w", request.RequestID, err)
	}
	return nil
}

func (r *PgxWithdrawalRepository) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error {
	query := `UPDATE withdrawal_requests SET status = $2 WHERE request_id = $1;`
	tag, err := r.store.conn(ctx).Exec(ctx, query, requestID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update withdrawal request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWithdrawalRepository) AppendRecord(ctx context.Context, record domain.WithdrawalRecord) error {
	query := `
		INSERT INTO withdrawal_records (record_id, approved_time, total_amount, order_count)
		VALUES ($1, $2, $3, $4);
	`
	m := mapping.ToModelWithdrawalRecord(record)
	_, err := r.store.conn(ctx).Exec(ctx, query,
		m.RecordID,
		m.ApprovedTime,
		m.TotalAmount,
		m.OrderCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: withdrawal record %s", apperrors.ErrDuplicate, record.RecordID)
		}
		return fmt.Errorf("failed to append withdrawal record %s: %w", record.RecordID, err)
	}
	return nil
}

func (r *PgxWithdrawalRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	query := `
		SELECT request_id, request_date, total_amount, order_ids, status
		FROM withdrawal_requests
		WHERE request_id = $1;
	`
	req, err := scanRequest(r.store.conn(ctx).QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find withdrawal request %s: %w", requestID, err)
	}
	return &req, nil
}

func (r *PgxWithdrawalRepository) ListRequests(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	query := `
		SELECT request_id, request_date, total_amount, order_ids, status
		FROM withdrawal_requests
		ORDER BY seq;
	`
	rows, err := r.store.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawal requests: %w", err)
	}
	defer rows.Close()

	requests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WithdrawalRequest, error) {
		return scanRequest(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan withdrawal requests: %w", err)
	}
	return requests, nil
}

func (r *PgxWithdrawalRepository) ListRecords(ctx context.Context) ([]domain.WithdrawalRecord, error) {
	query := `
		SELECT record_id, approved_time, total_amount, order_count
		FROM withdrawal_records
		ORDER BY seq;
	`
	rows, err := r.store.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawal records: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WithdrawalRecord, error) {
		var m models.WithdrawalRecord
		if err := row.Scan(&m.RecordID, &m.ApprovedTime, &m.TotalAmount, &m.OrderCount); err != nil {
			return domain.WithdrawalRecord{}, err
		}
		return mapping.ToDomainWithdrawalRecord(m), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan withdrawal records: %w", err)
	}
	return records, nil
}

func scanRequest(row pgx.Row) (domain.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	if err := row.Scan(&m.RequestID, &m.RequestDate, &m.TotalAmount, &m.OrderIDs, &m.Status); err != nil {
		return domain.WithdrawalRequest{}, err
	}
	return mapping.ToDomainWithdrawalRequest(m), nil
}
