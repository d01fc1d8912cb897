package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically. Repositories called with
// the ctx passed to fn take part in the same transaction; if fn returns an
// error nothing it wrote is kept.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
