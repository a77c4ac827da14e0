package wdbservice

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

// service adapts the write database daemon's REST API to the WriteDBService
// port.
type service struct {
	addr   string
	client *httputil.Client
	cb     *gobreaker.CircuitBreaker
}

// NewService returns a WriteDBService talking to the wdb daemon at addr.
func NewService(addr string, client *httputil.Client) ports.WriteDBService {
	return &service{
		addr:   addr,
		client: client,
		cb:     circuitbreaker.NewCircuitBreaker("wdb"),
	}
}

type checkFundsRequest struct {
	PrivateKey string `json:"privateKey"`
}

type checkFundsResponse struct {
	HasEnoughFunds bool `json:"hasEnoughFunds"`
}

func (s *service) CheckForSufficientFunds(
	ctx context.Context, privateKey string,
) (bool, error) {
	body, _ := json.Marshal(checkFundsRequest{PrivateKey: privateKey})
	url := fmt.Sprintf("%s/v1/entry/check-funds", s.addr)
	header := map[string]string{"Content-Type": "application/json"}

	resp, err := s.cb.Execute(func() (interface{}, error) {
		status, resp, err := s.client.NewHTTPRequest(
			ctx, http.MethodPost, url, string(body), header,
		)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf(resp)
		}
		return resp, nil
	})
	if err != nil {
		return false, err
	}

	var res checkFundsResponse
	if err := json.Unmarshal([]byte(resp.(string)), &res); err != nil {
		return false, fmt.Errorf("invalid check funds response: %s", err)
	}
	return res.HasEnoughFunds, nil
}
