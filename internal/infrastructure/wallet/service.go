package walletservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/bdex-network/bdex-daemon/internal/core/ports"
	"github.com/bdex-network/bdex-daemon/pkg/circuitbreaker"
	"github.com/bdex-network/bdex-daemon/pkg/httputil"
)

// service adapts the companion wallet daemon's REST API to the WalletService
// port. The wallet daemon holds the keys and builds and half-signs the
// settlement transactions, this adapter never sees raw key material other
// than forwarding the WIF exposed by the colocated daemon.
type service struct {
	addr   string
	client *httputil.Client
	cb     *gobreaker.CircuitBreaker
}

// NewService returns a WalletService talking to the wallet daemon at addr.
func NewService(addr string, client *httputil.Client) ports.WalletService {
	return &service{
		addr:   addr,
		client: client,
		cb:     circuitbreaker.NewCircuitBreaker("wallet"),
	}
}

func (s *service) Info(ctx context.Context) (ports.WalletInfo, error) {
	url := fmt.Sprintf("%s/v1/wallet/info", s.addr)
	resp, err := s.get(ctx, url)
	if err != nil {
		return ports.WalletInfo{}, err
	}

	var info walletInfo
	if err := json.Unmarshal([]byte(resp), &info); err != nil {
		return ports.WalletInfo{}, fmt.Errorf("invalid wallet info: %s", err)
	}
	return ports.WalletInfo{
		Address:    info.Address,
		PublicKey:  info.PublicKey,
		PrivateKey: info.PrivateKey,
	}, nil
}

func (s *service) Balance(ctx context.Context) (uint64, error) {
	url := fmt.Sprintf("%s/v1/wallet/balance", s.addr)
	resp, err := s.get(ctx, url)
	if err != nil {
		return 0, err
	}

	var balance walletBalance
	if err := json.Unmarshal([]byte(resp), &balance); err != nil {
		return 0, fmt.Errorf("invalid wallet balance: %s", err)
	}
	return balance.Sats, nil
}

func (s *service) ListUtxos(ctx context.Context) ([]ports.Utxo, error) {
	url := fmt.Sprintf("%s/v1/wallet/utxos", s.addr)
	resp, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var list []walletUtxo
	if err := json.Unmarshal([]byte(resp), &list); err != nil {
		return nil, fmt.Errorf("invalid wallet utxos: %s", err)
	}

	utxos := make([]ports.Utxo, 0, len(list))
	for _, u := range list {
		utxos = append(utxos, ports.Utxo{
			Txid:    u.Txid,
			Vout:    u.Vout,
			Value:   u.Value,
			TokenID: u.TokenID,
			Address: u.Address,
		})
	}
	return utxos, nil
}

func (s *service) CreatePartialTx(
	ctx context.Context, order ports.OrderOutpoint, utxos []ports.Utxo,
) (string, error) {
	req := partialTxRequest{
		Txid:       order.Txid,
		Vout:       order.Vout,
		NumTokens:  order.NumTokens,
		RateInSats: order.RateInSats,
	}
	for _, u := range utxos {
		req.Utxos = append(req.Utxos, walletUtxo{
			Txid:    u.Txid,
			Vout:    u.Vout,
			Value:   u.Value,
			TokenID: u.TokenID,
			Address: u.Address,
		})
	}
	body, _ := json.Marshal(req)

	url := fmt.Sprintf("%s/v1/wallet/partial-tx", s.addr)
	resp, err := s.post(ctx, url, string(body))
	if err != nil {
		return "", err
	}

	var tx partialTxResponse
	if err := json.Unmarshal([]byte(resp), &tx); err != nil {
		return "", fmt.Errorf("invalid partial tx response: %s", err)
	}
	if tx.TxHex == "" {
		return "", fmt.Errorf("wallet returned an empty partial tx")
	}
	return tx.TxHex, nil
}

func (s *service) get(ctx context.Context, url string) (string, error) {
	return s.request(ctx, http.MethodGet, url, "")
}

func (s *service) post(ctx context.Context, url, body string) (string, error) {
	return s.request(ctx, http.MethodPost, url, body)
}

func (s *service) request(
	ctx context.Context, method, url, body string,
) (string, error) {
	header := map[string]string{"Content-Type": "application/json"}
	resp, err := s.cb.Execute(func() (interface{}, error) {
		status, resp, err := s.client.NewHTTPRequest(ctx, method, url, body, header)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf(resp)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}
	return resp.(string), nil
}
