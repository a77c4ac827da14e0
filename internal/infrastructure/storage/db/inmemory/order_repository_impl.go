package inmemory

import (
	"context"
	"sync"

	"github.com/bdex-network/bdex-daemon/internal/core/domain"
)

// OrderRepositoryImpl is a map backed domain.OrderRepository. Used for tests
// and for running the daemon without persistence.
type OrderRepositoryImpl struct {
	orders map[string]domain.Order
	lock   *sync.RWMutex
}

// NewOrderRepositoryImpl returns a new empty in-memory repository.
func NewOrderRepositoryImpl() *OrderRepositoryImpl {
	return &OrderRepositoryImpl{
		orders: map[string]domain.Order{},
		lock:   &sync.RWMutex{},
	}
}

func (o *OrderRepositoryImpl) AddOrder(
	ctx context.Context, order *domain.Order,
) error {
	o.lock.Lock()
	defer o.lock.Unlock()

	if _, ok := o.orders[order.P2wdbHash]; ok {
		return nil
	}
	o.orders[order.P2wdbHash] = *order
	return nil
}

func (o *OrderRepositoryImpl) GetAllOrders(
	ctx context.Context,
) ([]domain.Order, error) {
	o.lock.RLock()
	defer o.lock.RUnlock()

	orders := make([]domain.Order, 0, len(o.orders))
	for _, order := range o.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (o *OrderRepositoryImpl) GetOrderByHash(
	ctx context.Context, hash string,
) (*domain.Order, error) {
	if hash == "" {
		return nil, domain.ErrInvalidOrderHash
	}

	o.lock.RLock()
	defer o.lock.RUnlock()

	order, ok := o.orders[hash]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

// UpdateOrder holds the write lock for the whole read-modify-write cycle,
// giving the same compare-and-swap guarantee as the badger implementation.
func (o *OrderRepositoryImpl) UpdateOrder(
	ctx context.Context,
	hash string,
	updateFn func(order *domain.Order) (*domain.Order, error),
) error {
	if hash == "" {
		return domain.ErrInvalidOrderHash
	}

	o.lock.Lock()
	defer o.lock.Unlock()

	order, ok := o.orders[hash]
	if !ok {
		return domain.ErrOrderNotFound
	}

	updatedOrder, err := updateFn(&order)
	if err != nil {
		return err
	}

	o.orders[hash] = *updatedOrder
	return nil
}
