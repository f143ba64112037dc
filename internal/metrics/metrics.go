package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AlertsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronewatch_alerts_enqueued_total",
		Help: "Total number of alerts placed on the processing queue.",
	})

	AlertsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronewatch_alerts_processed_total",
		Help: "Total number of alerts that completed a dispatch cycle.",
	})

	AlertsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronewatch_alerts_dropped_total",
		Help: "Total number of alerts rejected due to a full queue.",
	})

	AlertsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dronewatch_alerts_rejected_total",
		Help: "Total number of alerts rejected by the dispatch decision, labelled by reason.",
	}, []string{"reason"})

	ZoneDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dronewatch_zone_deliveries_total",
		Help: "Total number of per-zone delivery attempts, labelled by status.",
	}, []string{"status"})

	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dronewatch_dispatch_duration_ms",
		Help:    "End-to-end dispatch cycle latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dronewatch_queue_utilization_ratio",
		Help: "Current alert queue utilization (0–1).",
	})
)
