package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bdex-network/bdex-daemon/internal/core/domain"
)

func validOrderFields() domain.OrderFields {
	return domain.OrderFields{
		P2wdbHash:  "zdpuAs8zTf13orderhash",
		UtxoTxid:   "7b1e1a2f9c8d7e6f5a4b3c2d1e0f9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f",
		UtxoVout:   json.Number("0"),
		BuyOrSell:  domain.OrderTypeSell,
		NumTokens:  json.Number("10"),
		RateInSats: json.Number("100"),
	}
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	fields := validOrderFields()
	order, err := domain.ParseOrder(fields)
	require.NoError(t, err)
	require.Equal(t, fields.P2wdbHash, order.P2wdbHash)
	require.Equal(t, fields.UtxoTxid, order.UtxoTxid)
	require.Equal(t, uint32(0), order.UtxoVout)
	require.Equal(t, domain.OrderTypeSell, order.BuyOrSell)
	require.Equal(t, uint64(10), order.NumTokens)
	require.Equal(t, uint64(100), order.RateInSats)
	require.Equal(t, domain.OrderStatusPosted, order.OrderStatus)
	require.True(t, order.IsPosted())
}

func TestParseOrderNormalizesStringNumbers(t *testing.T) {
	t.Parallel()

	fields := validOrderFields()
	fields.NumTokens = json.Number("42")
	fields.RateInSats = json.Number("1500")
	fields.UtxoVout = json.Number("3")

	order, err := domain.ParseOrder(fields)
	require.NoError(t, err)
	require.Equal(t, uint64(42), order.NumTokens)
	require.Equal(t, uint64(1500), order.RateInSats)
	require.Equal(t, uint32(3), order.UtxoVout)
}

func TestFailingParseOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(f *domain.OrderFields)
		expectedErr error
	}{
		{
			name:        "missing_hash",
			mutate:      func(f *domain.OrderFields) { f.P2wdbHash = "" },
			expectedErr: domain.ErrOrderMissingHash,
		},
		{
			name:        "malformed_txid",
			mutate:      func(f *domain.OrderFields) { f.UtxoTxid = "not-a-txid" },
			expectedErr: domain.ErrOrderInvalidTxid,
		},
		{
			name:        "negative_vout",
			mutate:      func(f *domain.OrderFields) { f.UtxoVout = json.Number("-1") },
			expectedErr: domain.ErrOrderInvalidVout,
		},
		{
			name:        "fractional_vout",
			mutate:      func(f *domain.OrderFields) { f.UtxoVout = json.Number("1.5") },
			expectedErr: domain.ErrOrderInvalidVout,
		},
		{
			name:        "unknown_order_type",
			mutate:      func(f *domain.OrderFields) { f.BuyOrSell = "short" },
			expectedErr: domain.ErrOrderInvalidType,
		},
		{
			name:        "empty_order_type",
			mutate:      func(f *domain.OrderFields) { f.BuyOrSell = "" },
			expectedErr: domain.ErrOrderInvalidType,
		},
		{
			name:        "zero_num_tokens",
			mutate:      func(f *domain.OrderFields) { f.NumTokens = json.Number("0") },
			expectedErr: domain.ErrOrderInvalidNumTokens,
		},
		{
			name:        "fractional_num_tokens",
			mutate:      func(f *domain.OrderFields) { f.NumTokens = json.Number("0.5") },
			expectedErr: domain.ErrOrderInvalidNumTokens,
		},
		{
			name:        "zero_rate",
			mutate:      func(f *domain.OrderFields) { f.RateInSats = json.Number("0") },
			expectedErr: domain.ErrOrderInvalidRate,
		},
		{
			name:        "non_numeric_rate",
			mutate:      func(f *domain.OrderFields) { f.RateInSats = json.Number("lots") },
			expectedErr: domain.ErrOrderInvalidRate,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := validOrderFields()
			tt.mutate(&fields)

			order, err := domain.ParseOrder(fields)
			require.Nil(t, order)
			require.ErrorIs(t, err, tt.expectedErr)
			require.True(t, domain.IsValidationError(err))
		})
	}
}

func TestParseOrderRecognizesBuy(t *testing.T) {
	t.Parallel()

	fields := validOrderFields()
	fields.BuyOrSell = domain.OrderTypeBuy

	order, err := domain.ParseOrder(fields)
	require.NoError(t, err)
	require.Equal(t, domain.OrderTypeBuy, order.BuyOrSell)
}

func TestOrderTake(t *testing.T) {
	t.Parallel()

	order, err := domain.ParseOrder(validOrderFields())
	require.NoError(t, err)

	err = order.Take()
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusTaken, order.OrderStatus)
	require.False(t, order.IsPosted())

	err = order.Take()
	require.ErrorIs(t, err, domain.ErrOrderAlreadyTaken)
	require.Equal(t, domain.OrderStatusTaken, order.OrderStatus)
}

func TestOrderRelease(t *testing.T) {
	t.Parallel()

	order, err := domain.ParseOrder(validOrderFields())
	require.NoError(t, err)

	err = order.Release()
	require.ErrorIs(t, err, domain.ErrOrderNotTaken)

	require.NoError(t, order.Take())
	require.NoError(t, order.Release())
	require.True(t, order.IsPosted())
}

func TestOrderSatsNeeded(t *testing.T) {
	t.Parallel()

	order, err := domain.ParseOrder(validOrderFields())
	require.NoError(t, err)
	require.Equal(t, "1000", order.SatsNeeded().String())
}
