package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Metrics struct {
	Operations  *prometheus.CounterVec
	AuditFailed prometheus.Counter
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on reg, letting tests use a private registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantadmin_tenant_operations_total",
			Help: "Tenant operations by kind and outcome",
		}, []string{"operation", "outcome"}),
		AuditFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "tenantadmin_tenant_audit_failures_total",
			Help: "Tenant audit events that could not be published",
		}),
	}
}

func (m *Metrics) IncOperation(operation, outcome string) {
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) IncAuditFailed() {
	m.AuditFailed.Inc()
}
