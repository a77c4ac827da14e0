package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bdex-network/bdex-daemon/internal/core/ports"
	"github.com/bdex-network/bdex-daemon/pkg/explorer"
)

/*
 * Explorer
 */
type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) GetTxOut(
	ctx context.Context, txid string, vout uint32,
) (*explorer.TxOut, error) {
	args := m.Called(ctx, txid, vout)

	var res *explorer.TxOut
	if a := args.Get(0); a != nil {
		res = a.(*explorer.TxOut)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetBlockHeight(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

/*
 * Wallet
 */
type mockWallet struct {
	mock.Mock
}

func (m *mockWallet) Info(ctx context.Context) (ports.WalletInfo, error) {
	args := m.Called(ctx)

	var res ports.WalletInfo
	if a := args.Get(0); a != nil {
		res = a.(ports.WalletInfo)
	}
	return res, args.Error(1)
}

func (m *mockWallet) Balance(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockWallet) ListUtxos(ctx context.Context) ([]ports.Utxo, error) {
	args := m.Called(ctx)

	var res []ports.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]ports.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockWallet) CreatePartialTx(
	ctx context.Context, order ports.OrderOutpoint, utxos []ports.Utxo,
) (string, error) {
	args := m.Called(ctx, order, utxos)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

/*
 * WriteDB
 */
type mockWriteDB struct {
	mock.Mock
}

func (m *mockWriteDB) CheckForSufficientFunds(
	ctx context.Context, privateKey string,
) (bool, error) {
	args := m.Called(ctx, privateKey)
	return args.Bool(0), args.Error(1)
}
