package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bdex-network/bdex-daemon/internal/core/domain"
)

// DefaultSafetyMarginSats is the buffer added on top of the sats needed for
// a trade, covering network fees and absorbing balance races between the
// check and the actual spend.
const DefaultSafetyMarginSats = 5000

// ensureFunds is the solvency policy run right before committing to a trade.
// It verifies that the signing credential can pay for one write database
// entry and that the wallet balance covers the advertised quantity at the
// advertised rate plus the safety margin. The balance is a live read, funds
// are not locked.
func (o *orderService) ensureFunds(
	ctx context.Context, order *domain.Order,
) error {
	info, err := o.walletSvc.Info(ctx)
	if err != nil {
		return fmt.Errorf("fetching wallet info: %w", err)
	}

	ok, err := o.wdbSvc.CheckForSufficientFunds(ctx, info.PrivateKey)
	if err != nil {
		return fmt.Errorf("checking write database funds: %w", err)
	}
	if !ok {
		return ErrInsufficientFunds
	}

	switch order.BuyOrSell {
	case domain.OrderTypeSell:
		balance, err := o.walletSvc.Balance(ctx)
		if err != nil {
			return fmt.Errorf("fetching wallet balance: %w", err)
		}

		satsNeeded := order.SatsNeeded().
			Add(decimal.NewFromInt(int64(o.safetyMarginSats)))
		if satsNeeded.GreaterThan(decimal.NewFromInt(int64(balance))) {
			return ErrInsufficientFunds
		}
		return nil
	default:
		return ErrUnsupportedOrderType
	}
}
