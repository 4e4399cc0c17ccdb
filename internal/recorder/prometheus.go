package recorder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder exports fetch activity as Prometheus metrics.
type PrometheusRecorder struct {
	fetches    *prometheus.CounterVec
	rows       *prometheus.CounterVec
	rejections *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewPrometheusRecorder registers its collectors with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	f := promauto.With(reg)
	return &PrometheusRecorder{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscope_fetches_total",
				Help: "Total number of provider calls by outcome",
			},
			[]string{"provider", "interval", "outcome"},
		),
		rows: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscope_rows_total",
				Help: "Total number of rows returned by the provider",
			},
			[]string{"provider", "interval"},
		),
		rejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscope_rejections_total",
				Help: "Requests suppressed before reaching the provider",
			},
			[]string{"reason"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockscope_fetch_duration_seconds",
				Help:    "Duration of provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "interval"},
		),
	}
}

func (r *PrometheusRecorder) RecordFetch(evt *FetchEvent) error {
	interval := string(evt.Interval)
	r.fetches.WithLabelValues(evt.Provider, interval, string(evt.Outcome)).Inc()
	r.rows.WithLabelValues(evt.Provider, interval).Add(float64(evt.Rows))
	r.latency.WithLabelValues(evt.Provider, interval).Observe(evt.Duration.Seconds())
	return nil
}

func (r *PrometheusRecorder) RecordRejection(evt *RejectionEvent) error {
	r.rejections.WithLabelValues(evt.Reason).Inc()
	return nil
}
