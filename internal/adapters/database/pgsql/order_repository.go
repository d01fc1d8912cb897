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

const orderColumns = `order_id, student_name, course_name, amount, scenario, order_date,
	settlement_time, withdrawal_status, withdrawn_amount, withdrawal_time`

type PgxOrderRepository struct {
	store *Store
}

// NewOrderRepository creates a new repository for order data.
func NewOrderRepository(store *Store) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{store: store}
}

// SaveOrder inserts a new order. Orders are never updated through this path.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	m := mapping.ToModelOrder(order)
	_, err := r.store.conn(ctx).Exec(ctx, query,
		m.OrderID,
		m.StudentName,
		m.CourseName,
		m.Amount,
		m.Scenario,
		m.OrderDate,
		m.SettlementTime,
		m.WithdrawalStatus,
		m.WithdrawnAmount,
		m.WithdrawalTime,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order %s", apperrors.ErrDuplicate, order.OrderID)
		}
		return fmt.Errorf("failed to save order %s: %w", order.OrderID, err)
	}
	return nil
}

// FindOrderByID retrieves a single order.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`
	order, err := scanOrder(r.store.conn(ctx).QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return &order, nil
}

// FindOrdersByIDs retrieves the orders that exist among orderIDs.
func (r *PgxOrderRepository) FindOrdersByIDs(ctx context.Context, orderIDs []string) (map[string]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = ANY($1);`
	orders, err := r.queryOrders(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[string]domain.Order, len(orders))
	for _, o := range orders {
		found[o.OrderID] = o
	}
	return found, nil
}

// ListOrders retrieves every order in insertion order.
func (r *PgxOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY seq;`
	return r.queryOrders(ctx, query)
}

// UpdateWithdrawalState writes the withdrawal fields of every order, all or
// nothing. Outside a unit of work it opens its own transaction.
func (r *PgxOrderRepository) UpdateWithdrawalState(ctx context.Context, orders []domain.Order) error {
	query := `
		UPDATE orders
		SET withdrawal_status = $2, withdrawn_amount = $3, withdrawal_time = $4
		WHERE order_id = $1;
	`
	return r.store.WithinTransaction(ctx, func(ctx context.Context) error {
		conn := r.store.conn(ctx)
		for _, o := range orders {
			tag, err := conn.Exec(ctx, query, o.OrderID, string(o.WithdrawalStatus), o.WithdrawnAmount, o.WithdrawalTime)
			if err != nil {
				return fmt.Errorf("failed to update withdrawal state of order %s: %w", o.OrderID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, o.OrderID)
			}
		}
		return nil
	})
}

func (r *PgxOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.store.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.StudentName,
		&m.CourseName,
		&m.Amount,
		&m.Scenario,
		&m.OrderDate,
		&m.SettlementTime,
		&m.WithdrawalStatus,
		&m.WithdrawnAmount,
		&m.WithdrawalTime,
	)
	if err != nil {
		return domain.Order{}, err
	}
	return mapping.ToDomainOrder(m), nil
}
