package service

import (
	"context"
	"errors"
	"log/slog"

	"tenantadmin/internal/tenant/models"
	id "tenantadmin/pkg/domain"
	dErrors "tenantadmin/pkg/domain-errors"
	"tenantadmin/pkg/platform/middleware/admin"
	request "tenantadmin/pkg/platform/middleware/request"
	"tenantadmin/pkg/platform/sentinel"
)

type TenantStore interface {
	CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error
	Update(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	Delete(ctx context.Context, tenantID id.TenantID) error
}

type AuditPublisher interface {
	Publish(ctx context.Context, event models.AuditEvent) error
}

// Error wrapping helpers translate sentinel errors to domain errors.

func wrapTenantErr(err error, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "tenant name must be unique")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

// auditEmitter enriches tenant mutation events and forwards them to the
// publisher. Publish failures are logged, never returned: the mutation is
// already committed.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
	onFailure func()
}

func (e *auditEmitter) emit(ctx context.Context, event models.AuditEvent) {
	event.RequestID = request.GetRequestID(ctx)
	if event.Actor == "" {
		event.Actor = admin.GetAdminActorID(ctx)
	}
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		if e.onFailure != nil {
			e.onFailure()
		}
		if e.logger != nil {
			e.logger.ErrorContext(ctx, "failed to publish audit event",
				"event", string(event.Action),
				"tenant_id", event.TenantID.String(),
				"error", err,
			)
		}
	}
}

func actorOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
