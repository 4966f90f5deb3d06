package metrics

import "github.com/prometheus/client_golang/prometheus"

// Encoder and ranker Prometheus metrics.
var (
	EncodeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semsearch",
			Name:      "encode_requests_total",
			Help:      "Total number of encode requests",
		},
		[]string{"kind", "status"}, // kind: "item" / "query", status: "ok" / "unavailable"
	)

	EncodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "semsearch",
			Name:      "encode_duration_seconds",
			Help:      "Encoder forward-pass duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	RankDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "semsearch",
			Name:      "rank_duration_seconds",
			Help:      "Similarity scan duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"caller"},
	)

	RankCorpusSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "semsearch",
			Name:      "rank_corpus_size",
			Help:      "Number of vector records scanned per ranking",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		},
	)
)

var encoderMetricsRegistered bool

// RegisterEncoderMetrics registers encoder metrics. Must be called once from main.
func RegisterEncoderMetrics() {
	if encoderMetricsRegistered {
		return
	}
	prometheus.MustRegister(EncodeRequestsTotal)
	prometheus.MustRegister(EncodeDuration)
	prometheus.MustRegister(RankDuration)
	prometheus.MustRegister(RankCorpusSize)
	encoderMetricsRegistered = true
}
