package domain

import "context"

// OrderRepository is the abstraction for any kind of database intended to
// persist Orders, keyed by their p2wdb content hash.
type OrderRepository interface {
	// AddOrder inserts the given order. Re-adding an order with a hash that
	// is already stored is a no-op, so that webhook redeliveries stay
	// idempotent.
	AddOrder(ctx context.Context, order *Order) error
	// GetAllOrders returns all the orders stored in the repository, in no
	// particular order.
	GetAllOrders(ctx context.Context) ([]Order, error)
	// GetOrderByHash returns the order with the given p2wdb hash, or
	// ErrOrderNotFound if no record matches.
	GetOrderByHash(ctx context.Context, hash string) (*Order, error)
	// UpdateOrder commits the changes made by updateFn to the stored order
	// atomically: the read, the closure and the write happen against the same
	// snapshot, and concurrent updates of the same order cannot interleave.
	// An error returned by updateFn aborts the update and is propagated
	// unchanged.
	UpdateOrder(
		ctx context.Context,
		hash string,
		updateFn func(o *Order) (*Order, error),
	) error
}
