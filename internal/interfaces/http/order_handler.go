package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/bdex-network/bdex-daemon/internal/core/application"
	"github.com/bdex-network/bdex-daemon/internal/core/domain"
)

// OrderHandler exposes the order lifecycle over HTTP. POST /v1/order is the
// endpoint the write database webhook is pointed at, the others serve local
// operators and takers.
type OrderHandler struct {
	orderSvc      application.OrderService
	webhookSecret string
}

// NewOrderHandler returns the handler. A non-empty webhookSecret enables JWT
// verification on the webhook endpoint.
func NewOrderHandler(
	orderSvc application.OrderService, webhookSecret string,
) *OrderHandler {
	return &OrderHandler{
		orderSvc:      orderSvc,
		webhookSecret: webhookSecret,
	}
}

// orderEvent is the webhook payload: the order fields nested under a data
// key, plus the content hash the write database assigned to the entry.
type orderEvent struct {
	Hash string             `json:"hash"`
	Data domain.OrderFields `json:"data"`
}

type takeOrderRequest struct {
	OrderHash string `json:"orderHash"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, req *http.Request) {
	if h.webhookSecret != "" {
		if err := verifyWebhookToken(req, h.webhookSecret); err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
	}

	var event orderEvent
	if err := decodeJSON(req, &event); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	fields := event.Data
	if fields.P2wdbHash == "" {
		fields.P2wdbHash = event.Hash
	}

	created, err := h.orderSvc.CreateOrder(req.Context(), fields)
	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}

	if created {
		ordersCreatedCounter.Inc()
	} else {
		orderRejectionsCounter.WithLabelValues("stale_utxo").Inc()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"created": created})
}

func (h *OrderHandler) TakeOrder(w http.ResponseWriter, req *http.Request) {
	var body takeOrderRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	txHex, err := h.orderSvc.TakeOrder(req.Context(), body.OrderHash)
	if err != nil {
		status := statusFromError(err)
		if status < http.StatusInternalServerError {
			orderRejectionsCounter.WithLabelValues(rejectionReason(err)).Inc()
		}
		writeError(w, status, err)
		return
	}

	ordersTakenCounter.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"txHex": txHex})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, req *http.Request) {
	orders, err := h.orderSvc.ListOrders(req.Context())
	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}

	list := make([]orderResponse, 0, len(orders))
	for i := range orders {
		list = append(list, newOrderResponse(&orders[i]))
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, req *http.Request) {
	order, err := h.orderSvc.GetOrderByHash(req.Context(), req.PathValue("hash"))
	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(order))
}

type orderResponse struct {
	P2wdbHash   string `json:"p2wdbHash"`
	UtxoTxid    string `json:"utxoTxid"`
	UtxoVout    uint32 `json:"utxoVout"`
	BuyOrSell   string `json:"buyOrSell"`
	NumTokens   uint64 `json:"numTokens"`
	RateInSats  uint64 `json:"rateInSats"`
	OrderStatus string `json:"orderStatus"`
	CreatedAt   int64  `json:"createdAt"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
		P2wdbHash:   order.P2wdbHash,
		UtxoTxid:    order.UtxoTxid,
		UtxoVout:    order.UtxoVout,
		BuyOrSell:   order.BuyOrSell,
		NumTokens:   order.NumTokens,
		RateInSats:  order.RateInSats,
		OrderStatus: order.OrderStatus,
		CreatedAt:   order.CreatedAt,
	}
}

func decodeJSON(req *http.Request, v interface{}) error {
	defer req.Body.Close()
	dec := json.NewDecoder(req.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFromError maps the error taxonomy to HTTP statuses: business
// rejections to 4xx, collaborator outages to 503, anything else to 500.
func statusFromError(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderAlreadyTaken):
		return http.StatusConflict
	case errors.Is(err, application.ErrStaleOrder):
		return http.StatusGone
	case errors.Is(err, application.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, application.ErrUnsupportedOrderType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, application.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderAlreadyTaken):
		return "already_taken"
	case errors.Is(err, application.ErrStaleOrder):
		return "stale_utxo"
	case errors.Is(err, application.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, application.ErrUnsupportedOrderType):
		return "unsupported_type"
	case errors.Is(err, domain.ErrOrderNotFound):
		return "not_found"
	default:
		return "other"
	}
}
