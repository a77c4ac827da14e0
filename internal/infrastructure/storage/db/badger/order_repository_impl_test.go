package dbbadger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bdex-network/bdex-daemon/internal/core/domain"
)

func newTestRepository(t *testing.T) domain.OrderRepository {
	t.Helper()

	dbManager, err := NewDbManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { dbManager.Close() })

	return NewOrderRepositoryImpl(dbManager)
}

func newTestOrder(hash string) *domain.Order {
	return &domain.Order{
		P2wdbHash:   hash,
		UtxoTxid:    "7b1e1a2f9c8d7e6f5a4b3c2d1e0f9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f",
		UtxoVout:    0,
		BuyOrSell:   domain.OrderTypeSell,
		NumTokens:   10,
		RateInSats:  100,
		OrderStatus: domain.OrderStatusPosted,
		CreatedAt:   time.Now().Unix(),
	}
}

func TestAddAndGetOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder("zdpuTestOrderHash")
	require.NoError(t, repo.AddOrder(ctx, order))

	stored, err := repo.GetOrderByHash(ctx, order.P2wdbHash)
	require.NoError(t, err)
	require.Equal(t, *order, *stored)
}

func TestAddOrderTwiceIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder("zdpuTestOrderHash")
	require.NoError(t, repo.AddOrder(ctx, order))

	redelivered := newTestOrder(order.P2wdbHash)
	redelivered.NumTokens = 999
	require.NoError(t, repo.AddOrder(ctx, redelivered))

	stored, err := repo.GetOrderByHash(ctx, order.P2wdbHash)
	require.NoError(t, err)
	require.Equal(t, uint64(10), stored.NumTokens)
}

func TestGetOrderByHashFailures(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetOrderByHash(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidOrderHash)

	_, err = repo.GetOrderByHash(ctx, "unknownhash")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetAllOrders(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	orders, err := repo.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	require.NoError(t, repo.AddOrder(ctx, newTestOrder("zdpuOrderOne")))
	require.NoError(t, repo.AddOrder(ctx, newTestOrder("zdpuOrderTwo")))

	orders, err = repo.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
}

func TestUpdateOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder("zdpuTestOrderHash")
	require.NoError(t, repo.AddOrder(ctx, order))

	err := repo.UpdateOrder(
		ctx, order.P2wdbHash, func(o *domain.Order) (*domain.Order, error) {
			return o, o.Take()
		},
	)
	require.NoError(t, err)

	stored, err := repo.GetOrderByHash(ctx, order.P2wdbHash)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusTaken, stored.OrderStatus)
}

func TestUpdateOrderNotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateOrder(
		context.Background(), "unknownhash",
		func(o *domain.Order) (*domain.Order, error) {
			return o, nil
		},
	)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderAbortsOnClosureError(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder("zdpuTestOrderHash")
	order.OrderStatus = domain.OrderStatusTaken
	require.NoError(t, repo.AddOrder(ctx, order))

	err := repo.UpdateOrder(
		ctx, order.P2wdbHash, func(o *domain.Order) (*domain.Order, error) {
			return o, o.Take()
		},
	)
	require.ErrorIs(t, err, domain.ErrOrderAlreadyTaken)
}

// Exactly one of N concurrent posted -> taken transitions may win.
func TestConcurrentUpdateOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder("zdpuTestOrderHash")
	require.NoError(t, repo.AddOrder(ctx, order))

	numUpdates := 8
	errs := make([]error, numUpdates)

	wg := &sync.WaitGroup{}
	wg.Add(numUpdates)
	for i := 0; i < numUpdates; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.UpdateOrder(
				ctx, order.P2wdbHash, func(o *domain.Order) (*domain.Order, error) {
					return o, o.Take()
				},
			)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrOrderAlreadyTaken)
	}
	require.Equal(t, 1, succeeded)
}
