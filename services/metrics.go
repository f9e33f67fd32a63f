package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statusUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_status_updates_total",
		Help: "Number of successful order status writes, including Scaricato overlays.",
	})

	labelsRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_labels_rendered_total",
		Help: "Number of label PNGs rendered for print or export.",
	})

	batchOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_batch_operations_total",
		Help: "Number of batch operations applied to a selection.",
	}, []string{"action"})
)
