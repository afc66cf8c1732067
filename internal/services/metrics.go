package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// RankingMetrics tracks throughput and batch shape of the scoring
// pipeline, labelled by candidate kind.
type RankingMetrics struct {
	requestsTotal   *prometheus.CounterVec
	rankingDuration *prometheus.HistogramVec
	batchSize       *prometheus.GaugeVec
}

func NewRankingMetrics(logger *logrus.Logger) *RankingMetrics {
	m := &RankingMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotrank_ranking_requests_total",
			Help: "Total ranking requests served, by candidate kind and status",
		}, []string{"kind", "status"}),
		rankingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spotrank_ranking_duration_seconds",
			Help:    "End to end ranking pipeline latency",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),
		batchSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "spotrank_ranking_batch_size",
			Help: "Candidate counts per pipeline stage for the last request",
		}, []string{"kind", "stage"}),
	}

	for _, c := range []prometheus.Collector{m.requestsTotal, m.rankingDuration, m.batchSize} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				logger.WithError(err).Warn("Failed to register ranking metric")
			}
		}
	}

	return m
}

// ObserveRequest records one pipeline run. extracted is the superset
// size, qualified the post-gate batch, returned the result total.
func (m *RankingMetrics) ObserveRequest(kind string, extracted, qualified, returned int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(kind, "success").Inc()
	m.rankingDuration.WithLabelValues(kind).Observe(duration.Seconds())
	m.batchSize.WithLabelValues(kind, "extracted").Set(float64(extracted))
	m.batchSize.WithLabelValues(kind, "qualified").Set(float64(qualified))
	m.batchSize.WithLabelValues(kind, "returned").Set(float64(returned))
}

func (m *RankingMetrics) ObserveFailure(kind string) {
	m.requestsTotal.WithLabelValues(kind, "error").Inc()
}
