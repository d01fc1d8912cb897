package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxPool is the subset of *pgxpool.Pool the store uses; pgxmock satisfies it too.
type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// querier is implemented by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// TxOptions are used for every unit of work. Withdrawal operations read and
// then write the same rows, so they run serializable.
var TxOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}

// Store is the PostgreSQL-backed persistence for orders and withdrawals.
type Store struct {
	pool pgxPool
}

// NewStore wraps an existing pool. The schema comes from the migrations directory.
func NewStore(pool pgxPool) *Store {
	return &Store{pool: pool}
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// WithinTransaction runs fn inside one database transaction. Repository calls
// made with the ctx passed to fn use that transaction; nested calls join it.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.pool.BeginTx(ctx, TxOptions)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", cerr)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

// HealthCheck verifies database connectivity.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// conn returns the transaction bound to ctx, or the pool.
func (s *Store) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// NewRepositoryProvider wires every repository to one shared store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:      NewOrderRepository(store),
		WithdrawalRepo: NewWithdrawalRepository(store),
		TxManager:      store,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
