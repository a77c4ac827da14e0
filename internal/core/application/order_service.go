package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bdex-network/bdex-daemon/internal/core/domain"
	"github.com/bdex-network/bdex-daemon/internal/core/ports"
	"github.com/bdex-network/bdex-daemon/pkg/explorer"
)

// OrderService implements the order lifecycle: ingesting order events
// broadcast by the write database and filling posted orders on request.
type OrderService interface {
	// CreateOrder validates an inbound order event and persists it with
	// status Posted. It returns false without error when the backing utxo is
	// already spent or unknown, a routine race that must not surface as a
	// fault.
	CreateOrder(ctx context.Context, fields domain.OrderFields) (bool, error)
	// TakeOrder claims the posted order with the given hash and returns the
	// hex encoded partially-signed settlement transaction to relay back to
	// the advertiser. Of N concurrent calls on the same order exactly one
	// succeeds, the others fail with domain.ErrOrderAlreadyTaken.
	TakeOrder(ctx context.Context, orderHash string) (string, error)
	// ListOrders returns all persisted orders verbatim.
	ListOrders(ctx context.Context) ([]domain.Order, error)
	// GetOrderByHash returns the order with the given hash.
	GetOrderByHash(ctx context.Context, orderHash string) (*domain.Order, error)
}

type orderService struct {
	orderRepository  domain.OrderRepository
	explorerSvc      explorer.Service
	walletSvc        ports.WalletService
	wdbSvc           ports.WriteDBService
	safetyMarginSats uint64
}

// NewOrderService returns an OrderService backed by the given collaborators.
// A zero safetyMarginSats falls back to the default margin.
func NewOrderService(
	orderRepository domain.OrderRepository,
	explorerSvc explorer.Service,
	walletSvc ports.WalletService,
	wdbSvc ports.WriteDBService,
	safetyMarginSats uint64,
) OrderService {
	if safetyMarginSats == 0 {
		safetyMarginSats = DefaultSafetyMarginSats
	}
	return &orderService{
		orderRepository:  orderRepository,
		explorerSvc:      explorerSvc,
		walletSvc:        walletSvc,
		wdbSvc:           wdbSvc,
		safetyMarginSats: safetyMarginSats,
	}
}

func (o *orderService) CreateOrder(
	ctx context.Context, fields domain.OrderFields,
) (bool, error) {
	order, err := domain.ParseOrder(fields)
	if err != nil {
		return false, err
	}

	l := log.WithFields(log.Fields{
		"op":    "create_order",
		"trace": uuid.NewString(),
		"hash":  order.P2wdbHash,
	})

	txOut, err := o.explorerSvc.GetTxOut(ctx, order.UtxoTxid, order.UtxoVout)
	if err != nil {
		return false, fmt.Errorf("fetching utxo status: %w", err)
	}
	if txOut == nil {
		l.WithFields(log.Fields{
			"txid": order.UtxoTxid,
			"vout": order.UtxoVout,
		}).Info("skipping order, backing utxo is spent or unknown")
		return false, nil
	}

	if err := o.orderRepository.AddOrder(ctx, order); err != nil {
		return false, fmt.Errorf("persisting order: %w", err)
	}

	l.Info("order posted")
	return true, nil
}

func (o *orderService) TakeOrder(
	ctx context.Context, orderHash string,
) (string, error) {
	if orderHash == "" {
		return "", domain.ErrInvalidOrderHash
	}

	l := log.WithFields(log.Fields{
		"op":    "take_order",
		"trace": uuid.NewString(),
		"hash":  orderHash,
	})

	order, err := o.orderRepository.GetOrderByHash(ctx, orderHash)
	if err != nil {
		return "", err
	}

	// Status guard first: an already taken order must be rejected without
	// touching the oracle or the wallet.
	if !order.IsPosted() {
		return "", domain.ErrOrderAlreadyTaken
	}

	txOut, err := o.explorerSvc.GetTxOut(ctx, order.UtxoTxid, order.UtxoVout)
	if err != nil {
		return "", fmt.Errorf("fetching utxo status: %w", err)
	}
	if txOut == nil {
		return "", ErrStaleOrder
	}

	if err := o.ensureFunds(ctx, order); err != nil {
		return "", err
	}

	// Commit point: the conditional posted -> taken transition is the only
	// exclusivity guarantee between concurrent takers.
	if err := o.claimOrder(ctx, orderHash); err != nil {
		return "", err
	}

	txHex, err := o.buildPartialTx(ctx, order)
	if err != nil {
		o.releaseOrder(ctx, l, orderHash)
		return "", err
	}

	l.Info("order taken")
	return txHex, nil
}

func (o *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return o.orderRepository.GetAllOrders(ctx)
}

func (o *orderService) GetOrderByHash(
	ctx context.Context, orderHash string,
) (*domain.Order, error) {
	if orderHash == "" {
		return nil, domain.ErrInvalidOrderHash
	}
	return o.orderRepository.GetOrderByHash(ctx, orderHash)
}

func (o *orderService) claimOrder(ctx context.Context, orderHash string) error {
	return o.orderRepository.UpdateOrder(
		ctx, orderHash, func(order *domain.Order) (*domain.Order, error) {
			if err := order.Take(); err != nil {
				return nil, err
			}
			return order, nil
		},
	)
}

// releaseOrder undoes the taken claim so the order stays fillable after a
// failed settlement construction. Best effort, a failure here only leaves
// the order unfillable, never double-filled.
func (o *orderService) releaseOrder(
	ctx context.Context, l *log.Entry, orderHash string,
) {
	err := o.orderRepository.UpdateOrder(
		ctx, orderHash, func(order *domain.Order) (*domain.Order, error) {
			if err := order.Release(); err != nil {
				return nil, err
			}
			return order, nil
		},
	)
	if err != nil {
		l.WithError(err).Warn("failed to release claim on order")
	}
}

func (o *orderService) buildPartialTx(
	ctx context.Context, order *domain.Order,
) (string, error) {
	utxos, err := o.walletSvc.ListUtxos(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching wallet utxos: %w", err)
	}

	txHex, err := o.walletSvc.CreatePartialTx(ctx, ports.OrderOutpoint{
		Txid:       order.UtxoTxid,
		Vout:       order.UtxoVout,
		NumTokens:  order.NumTokens,
		RateInSats: order.RateInSats,
	}, utxos)
	if err != nil {
		return "", fmt.Errorf("building partial transaction: %w", err)
	}
	return txHex, nil
}
