package httpinterface

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewServer wires the order handler, the health check and the metrics
// endpoint into an http.Server listening on addr.
func NewServer(addr string, orderHandler *OrderHandler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/order", orderHandler.CreateOrder)
	mux.HandleFunc("POST /v1/order/take", orderHandler.TakeOrder)
	mux.HandleFunc("GET /v1/orders", orderHandler.ListOrders)
	mux.HandleFunc("GET /v1/order/{hash}", orderHandler.GetOrder)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           withRequestLogging(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, req)

		log.WithFields(log.Fields{
			"request_id": uuid.NewString(),
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     rec.status,
			"elapsed":    time.Since(start).String(),
		}).Debug("handled request")
	})
}
