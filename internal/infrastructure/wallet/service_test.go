package walletservice_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bdex-network/bdex-daemon/internal/core/ports"
	walletservice "github.com/bdex-network/bdex-daemon/internal/infrastructure/wallet"
	"github.com/bdex-network/bdex-daemon/pkg/httputil"
)

const testTxid = "7b1e1a2f9c8d7e6f5a4b3c2d1e0f9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f"

func newTestWalletDaemon(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/wallet/info", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"address": "bitcoincash:qq5l5en8mkxvtgaqw2kyfzk7dss0t6uflsuxl5mgc7",
			"publicKey": "02b463e3b23f",
			"privateKey": "L1aW4aubDFB7yfras2S1mN3bqg9w"
		}`)
	})
	mux.HandleFunc("/v1/wallet/balance", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"sats": 10000}`)
	})
	mux.HandleFunc("/v1/wallet/utxos", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"txid": "`+testTxid+`", "vout": 1, "value": 20000}]`)
	})
	mux.HandleFunc("/v1/wallet/partial-tx", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if body["utxoTxid"] != testTxid {
			http.Error(w, "unexpected txid", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"txHex": "0200000001aabbccdd"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestService(t *testing.T) ports.WalletService {
	t.Helper()
	server := newTestWalletDaemon(t)
	return walletservice.NewService(server.URL, httputil.NewClient(100, 0))
}

func TestInfo(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	info, err := svc.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "L1aW4aubDFB7yfras2S1mN3bqg9w", info.PrivateKey)
	require.NotEmpty(t, info.Address)
}

func TestBalance(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	balance, err := svc.Balance(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(10000), balance)
}

func TestListUtxos(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	utxos, err := svc.ListUtxos(context.Background())
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	require.Equal(t, testTxid, utxos[0].Txid)
	require.Equal(t, uint32(1), utxos[0].Vout)
	require.Equal(t, uint64(20000), utxos[0].Value)
}

func TestCreatePartialTx(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	txHex, err := svc.CreatePartialTx(
		context.Background(),
		ports.OrderOutpoint{Txid: testTxid, Vout: 0, NumTokens: 10, RateInSats: 100},
		[]ports.Utxo{{Txid: testTxid, Vout: 1, Value: 20000}},
	)
	require.NoError(t, err)
	require.Equal(t, "0200000001aabbccdd", txHex)
}

func TestUnreachableWalletDaemon(t *testing.T) {
	t.Parallel()

	svc := walletservice.NewService(
		"http://127.0.0.1:1", httputil.NewClient(100, 0),
	)
	_, err := svc.Balance(context.Background())
	require.Error(t, err)
}
