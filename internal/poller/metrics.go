package poller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	cycles    prometheus.Counter
	refreshes prometheus.Counter
	errors    prometheus.Counter
	active    prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		cycles: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "autocrea",
			Subsystem: "poller",
			Name:      "cycles_total",
			Help:      "Completed polling cycles.",
		}),
		refreshes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "autocrea",
			Subsystem: "poller",
			Name:      "refreshes_total",
			Help:      "Deployment status refreshes performed.",
		}),
		errors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "autocrea",
			Subsystem: "poller",
			Name:      "errors_total",
			Help:      "Refreshes that returned an error.",
		}),
		active: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "autocrea",
			Subsystem: "poller",
			Name:      "active_deployments",
			Help:      "In-flight deployments observed by the last cycle.",
		}),
	}
}
