package keycloak

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	opToken          = "token"
	opCreateUser     = "create_user"
	opEmailExists    = "email_exists"
	opUsernameExists = "username_exists"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantadmin_keycloak_requests_total",
			Help: "Identity provider admin calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tenantadmin_keycloak_request_duration_seconds",
			Help:    "Identity provider admin call latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(operation string, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Requests.WithLabelValues(operation, outcome).Inc()
	m.Latency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
