package upload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Saved *prometheus.CounterVec
	Bytes *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Saved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantadmin_uploads_total",
			Help: "Stored uploads by backend and outcome",
		}, []string{"backend", "outcome"}),
		Bytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tenantadmin_upload_size_bytes",
			Help:    "Size of stored uploads",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"backend"}),
	}
}

func (m *Metrics) observe(backend string, size int64, err error) {
	if err != nil {
		m.Saved.WithLabelValues(backend, "failure").Inc()
		return
	}
	m.Saved.WithLabelValues(backend, "success").Inc()
	m.Bytes.WithLabelValues(backend).Observe(float64(size))
}
