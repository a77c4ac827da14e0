package dbbadger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bdex-network/bdex-daemon/internal/core/domain"
)

// maxTxnRetries bounds the commit retries on badger transaction conflicts.
const maxTxnRetries = 5

type orderRepositoryImpl struct {
	db *DbManager
}

// NewOrderRepositoryImpl returns a badgerhold backed domain.OrderRepository.
func NewOrderRepositoryImpl(db *DbManager) domain.OrderRepository {
	return orderRepositoryImpl{db: db}
}

func (o orderRepositoryImpl) AddOrder(
	ctx context.Context, order *domain.Order,
) error {
	if err := o.db.Store.Insert(order.P2wdbHash, order); err != nil {
		if err == badgerhold.ErrKeyExists {
			return nil
		}
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func (o orderRepositoryImpl) GetAllOrders(
	ctx context.Context,
) ([]domain.Order, error) {
	var orders []domain.Order
	if err := o.db.Store.Find(&orders, nil); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

func (o orderRepositoryImpl) GetOrderByHash(
	ctx context.Context, hash string,
) (*domain.Order, error) {
	if hash == "" {
		return nil, domain.ErrInvalidOrderHash
	}

	var order domain.Order
	if err := o.db.Store.Get(hash, &order); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("fetching order: %w", err)
	}
	return &order, nil
}

// UpdateOrder runs the read, the closure and the write in a single badger
// transaction. Conflicting commits are retried, so that of two concurrent
// updates one observes the state written by the other. This is what makes
// the posted -> taken transition an atomic compare-and-swap.
func (o orderRepositoryImpl) UpdateOrder(
	ctx context.Context,
	hash string,
	updateFn func(order *domain.Order) (*domain.Order, error),
) error {
	if hash == "" {
		return domain.ErrInvalidOrderHash
	}

	var err error
	for i := 0; i < maxTxnRetries; i++ {
		err = o.tryUpdateOrder(hash, updateFn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("updating order: %w", err)
}

func (o orderRepositoryImpl) tryUpdateOrder(
	hash string,
	updateFn func(order *domain.Order) (*domain.Order, error),
) error {
	txn := o.db.Store.Badger().NewTransaction(true)
	defer txn.Discard()

	var order domain.Order
	if err := o.db.Store.TxGet(txn, hash, &order); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("fetching order: %w", err)
	}

	updatedOrder, err := updateFn(&order)
	if err != nil {
		return err
	}

	if err := o.db.Store.TxUpdate(txn, hash, *updatedOrder); err != nil {
		return fmt.Errorf("updating order: %w", err)
	}
	return txn.Commit()
}
