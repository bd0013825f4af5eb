package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	OutcomeNew       = "new"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oppradar_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oppradar_provider_search_duration_seconds",
			Help:    "Duration of each provider search call in seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
	)
	IngestedOpportunities = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oppradar_opportunities_ingested_total",
			Help: "Total number of processed hits by outcome.",
		},
		[]string{"outcome"},
	)
	SearchRunsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oppradar_search_runs_total",
			Help: "Total number of persisted search runs.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(IngestedOpportunities)
	prometheus.MustRegister(SearchRunsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}
