package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pako24",
			Subsystem: "orders",
			Name:      "submitted_total",
			Help:      "Total number of orders submitted by users",
		},
	)

	statusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pako24",
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Total number of order status changes",
		},
		[]string{"status"},
	)

	reportsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pako24",
			Subsystem: "analytics",
			Name:      "reports_exported_total",
			Help:      "Total number of analytics report downloads",
		},
		[]string{"format"},
	)
)
