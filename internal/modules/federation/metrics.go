package federation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveriesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fedipost_federation_deliveries",
		Help: "Outbound activity deliveries per inbox, by activity type and result",
	}, []string{"type", "status"})

	deliveryHist = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fedipost_federation_delivery_duration_seconds",
		Help:    "Time spent delivering one activity to one inbox",
		Buckets: prometheus.ExponentialBucketsRange(0.005, 30, 15),
	}, []string{"type"})
)
