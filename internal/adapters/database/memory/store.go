package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
)

// state is one consistent snapshot of everything the store holds.
// Slices keep insertion order; the index maps point into them.
type state struct {
	orders     []domain.Order
	orderIndex map[string]int
	requests   []domain.WithdrawalRequest
	reqIndex   map[string]int
	records    []domain.WithdrawalRecord
}

func newState() *state {
	return &state{
		orderIndex: make(map[string]int),
		reqIndex:   make(map[string]int),
	}
}

func (s *state) clone() *state {
	c := &state{
		orders:     make([]domain.Order, len(s.orders)),
		orderIndex: make(map[string]int, len(s.orderIndex)),
		requests:   make([]domain.WithdrawalRequest, len(s.requests)),
		reqIndex:   make(map[string]int, len(s.reqIndex)),
		records:    make([]domain.WithdrawalRecord, len(s.records)),
	}
	copy(c.orders, s.orders)
	copy(c.records, s.records)
	for i, r := range s.requests {
		c.requests[i] = copyRequest(r)
	}
	for k, v := range s.orderIndex {
		c.orderIndex[k] = v
	}
	for k, v := range s.reqIndex {
		c.reqIndex[k] = v
	}
	return c
}

func copyRequest(r domain.WithdrawalRequest) domain.WithdrawalRequest {
	ids := make([]string, len(r.OrderIDs))
	copy(ids, r.OrderIDs)
	r.OrderIDs = ids
	return r
}

type txKey struct{}

// Store keeps orders, withdrawal requests and history in process memory.
// Writes made inside WithinTransaction go to a private copy of the state
// that replaces the live state only when the unit of work succeeds.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// WithinTransaction runs fn against a copy of the state and commits it if fn
// succeeds. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, working)); err != nil {
		return err
	}
	s.state = working
	return nil
}

// HealthCheck always succeeds; the store has no external dependency.
func (s *Store) HealthCheck(context.Context) error {
	return nil
}

// read runs fn against the transaction's state, or the live state under a read lock.
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if st, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// write runs fn against the transaction's state, or as its own single-write transaction.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	return s.WithinTransaction(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txKey{}).(*state))
	})
}

// NewRepositoryProvider wires every repository to one shared store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:      NewOrderRepository(store),
		WithdrawalRepo: NewWithdrawalRepository(store),
		TxManager:      store,
	}
}
