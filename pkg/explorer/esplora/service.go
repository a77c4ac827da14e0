package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/bdex-network/bdex-daemon/pkg/circuitbreaker"
	"github.com/bdex-network/bdex-daemon/pkg/explorer"
	"github.com/bdex-network/bdex-daemon/pkg/httputil"
)

type esplora struct {
	apiURL string
	client *httputil.Client
	cb     *gobreaker.CircuitBreaker
}

// NewService returns a new esplora service as an explorer.Service interface.
func NewService(apiURL string, client *httputil.Client) (explorer.Service, error) {
	service := &esplora{
		apiURL: apiURL,
		client: client,
		cb:     circuitbreaker.NewCircuitBreaker("esplora"),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (e *esplora) healthCheck() error {
	_, err := e.GetBlockHeight(context.Background())
	return err
}

func (e *esplora) GetBlockHeight(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	resp, err := e.get(ctx, url)
	if err != nil {
		return 0, err
	}

	height, err := strconv.Atoi(resp)
	if err != nil {
		return 0, fmt.Errorf("invalid block height: %s", resp)
	}
	return height, nil
}

func (e *esplora) GetTxOut(
	ctx context.Context, txid string, vout uint32,
) (*explorer.TxOut, error) {
	url := fmt.Sprintf("%s/tx/%s/outspend/%d", e.apiURL, txid, vout)
	status, resp, err := e.request(ctx, url)
	if err != nil {
		return nil, err
	}
	// an unknown txid or an out of range vout means the output never existed.
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	var outspend outspendStatus
	if err := json.Unmarshal([]byte(resp), &outspend); err != nil {
		return nil, fmt.Errorf("error on retrieving outspend status: %s", err)
	}
	if outspend.Spent {
		return nil, nil
	}

	return e.getOutputDetails(ctx, txid, vout)
}

func (e *esplora) getOutputDetails(
	ctx context.Context, txid string, vout uint32,
) (*explorer.TxOut, error) {
	url := fmt.Sprintf("%s/tx/%s", e.apiURL, txid)
	resp, err := e.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var tx txDetails
	if err := json.Unmarshal([]byte(resp), &tx); err != nil {
		return nil, fmt.Errorf("error on retrieving tx: %s", err)
	}
	if int(vout) >= len(tx.Vout) {
		return nil, nil
	}

	out := tx.Vout[vout]
	return &explorer.TxOut{
		Txid:      txid,
		Vout:      vout,
		Value:     out.Value,
		Script:    out.ScriptPubKey,
		Confirmed: tx.Status.Confirmed,
	}, nil
}

func (e *esplora) get(ctx context.Context, url string) (string, error) {
	status, resp, err := e.request(ctx, url)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}
	return resp, nil
}

func (e *esplora) request(ctx context.Context, url string) (int, string, error) {
	type response struct {
		status int
		body   string
	}

	res, err := e.cb.Execute(func() (interface{}, error) {
		status, body, err := e.client.NewHTTPRequest(
			ctx, http.MethodGet, url, "", nil,
		)
		if err != nil {
			return nil, err
		}
		if status >= http.StatusInternalServerError {
			return nil, fmt.Errorf(body)
		}
		return response{status, body}, nil
	})
	if err != nil {
		return 0, "", err
	}

	r := res.(response)
	return r.status, r.body, nil
}
