// Package httptransport assembles the HTTP surface: middleware, tenant
// routes, health and metrics.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tenantadmin/internal/platform/health"
	tenanthandler "tenantadmin/internal/tenant/handler"
	adminmw "tenantadmin/pkg/platform/middleware/admin"
	request "tenantadmin/pkg/platform/middleware/request"
)

const requestTimeout = 30 * time.Second

// Deps are the collaborators the router mounts.
type Deps struct {
	Logger         *slog.Logger
	Tenants        *tenanthandler.Handler
	Health         *health.Handler
	Metrics        *request.Metrics
	Gatherer       prometheus.Gatherer
	AdminToken     string
	MaxUploadBytes int64
}

// NewRouter wires the middleware stack and all endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(d.Logger))
	r.Use(request.LatencyMiddleware(d.Metrics, routePattern))
	r.Use(request.Timeout(requestTimeout))

	if d.Health != nil {
		d.Health.Register(r)
	}

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if d.MaxUploadBytes > 0 {
			r.Use(request.BodyLimit(d.MaxUploadBytes))
		}
		if d.AdminToken != "" {
			r.Use(adminmw.RequireAdminToken(d.AdminToken, d.Logger))
		}
		d.Tenants.Register(r)
	})

	return r
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
