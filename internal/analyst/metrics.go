package analyst

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// askTotal counts chat submissions handled by the analyst.
	askTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "natalityd_analyst_requests_total",
			Help: "Total number of analyst chat submissions",
		},
	)

	// fallbackTotal counts submissions answered with the fallback reply
	// because the model call or response parsing failed.
	fallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "natalityd_analyst_fallbacks_total",
			Help: "Total number of analyst replies substituted with the fallback message",
		},
	)
)
