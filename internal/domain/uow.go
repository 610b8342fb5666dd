package domain

import (
	"context"
)

// UnitOfWork manages database transactions and domain event dispatching.
type UnitOfWork interface {
	// Do executes the given function within a transaction.
	// If the function returns an error, the transaction is rolled back.
	// Events raised by the aggregates, including those raised inside fn, are
	// written to the outbox in the same transaction.
	Do(ctx context.Context, fn func(ctx context.Context) error, aggregates ...AggregateRoot) error
}
