package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "koppen_classifications_total",
			Help: "Completed classifications by top-level climate group",
		},
		[]string{"group"},
	)

	// UnknownClassificationsTotal counts fallback results. The rule table is
	// believed to cover the real-valued input domain, so any increment here
	// points at a coverage gap worth investigating.
	UnknownClassificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "koppen_unknown_classifications_total",
			Help: "Classifications that fell through every group rule",
		},
	)

	HythergraphsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "koppen_hythergraphs_rendered_total",
			Help: "Hythergraph PNGs rendered",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "koppen_http_requests_total",
			Help: "HTTP requests served by path and status",
		},
		[]string{"path", "status"},
	)
)
