package httpinterface

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bdex",
		Name:      "orders_created_total",
		Help:      "Number of orders ingested and posted.",
	})
	ordersTakenCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bdex",
		Name:      "orders_taken_total",
		Help:      "Number of orders successfully taken.",
	})
	orderRejectionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bdex",
		Name:      "order_rejections_total",
		Help:      "Number of order operations rejected, by reason.",
	}, []string{"reason"})
)
