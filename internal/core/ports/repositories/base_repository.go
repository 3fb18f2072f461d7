package repositories

import "context"

// TransactionManager runs a unit of work atomically. Repository calls made with the ctx
// passed to fn join the transaction; nested calls join the outer one.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
