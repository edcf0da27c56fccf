package service

import (
	"context"
	"net/http"
	"time"

	tenantmetrics "tenantadmin/internal/tenant/metrics"
	"tenantadmin/internal/tenant/models"
	id "tenantadmin/pkg/domain"
	dErrors "tenantadmin/pkg/domain-errors"
)

const (
	opRead   = "read"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// TenantService manages the tenant lifecycle. Every method returns a complete
// Result for the dispatcher to relay, or a domain error.
type TenantService struct {
	tenants      TenantStore
	auditEmitter *auditEmitter
	metrics      *tenantmetrics.Metrics
	now          func() time.Time
}

func NewTenantService(tenants TenantStore, opts ...Option) *TenantService {
	cfg := &serviceConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	svc := &TenantService{
		tenants: tenants,
		metrics: cfg.metrics,
		now:     cfg.now,
	}
	svc.auditEmitter = &auditEmitter{
		logger:    cfg.logger,
		publisher: cfg.auditPublisher,
		onFailure: svc.incrementAuditFailed,
	}
	return svc
}

// GetTenants lists all tenants ordered by creation time.
func (s *TenantService) GetTenants(ctx context.Context) (*models.Result, error) {
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		s.record(opRead, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tenants")
	}
	if tenants == nil {
		tenants = []*models.Tenant{}
	}
	s.record(opRead, nil)
	return models.NewResult(http.StatusOK, &models.TenantList{Tenants: tenants}), nil
}

func (s *TenantService) CreateTenants(ctx context.Context, payload *models.CreatePayload) (*models.Result, error) {
	tenant, err := s.createTenant(ctx, payload)
	s.record(opCreate, err)
	if err != nil {
		return nil, err
	}
	s.auditEmitter.emit(ctx, models.AuditEvent{
		Action:     models.AuditTenantCreated,
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
		Actor:      actorOf(tenant.CreatedBy),
		OccurredAt: tenant.CreatedAt,
	})
	return models.NewResult(http.StatusCreated, tenant).
		WithHeader("X-Tenant-ID", tenant.ID.String()), nil
}

func (s *TenantService) createTenant(ctx context.Context, payload *models.CreatePayload) (*models.Tenant, error) {
	tenant, err := models.NewTenant(id.NewTenantID(), payload, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.tenants.CreateIfNameAvailable(ctx, tenant); err != nil {
		return nil, wrapTenantErr(err, "failed to create tenant")
	}
	return tenant, nil
}

// UpdateTenants applies a partial update. Unset payload fields keep their
// stored values; the image list and updating actor are always replaced.
func (s *TenantService) UpdateTenants(ctx context.Context, tenantID id.TenantID, payload *models.UpdatePayload) (*models.Result, error) {
	tenant, err := s.updateTenant(ctx, tenantID, payload)
	s.record(opUpdate, err)
	if err != nil {
		return nil, err
	}
	s.auditEmitter.emit(ctx, models.AuditEvent{
		Action:     models.AuditTenantUpdated,
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
		Actor:      actorOf(tenant.UpdatedBy),
		OccurredAt: tenant.UpdatedAt,
	})
	return models.NewResult(http.StatusOK, tenant), nil
}

func (s *TenantService) updateTenant(ctx context.Context, tenantID id.TenantID, payload *models.UpdatePayload) (*models.Tenant, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant ID required")
	}
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, wrapTenantErr(err, "failed to load tenant")
	}
	if err := tenant.Apply(payload, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, wrapTenantErr(err, "failed to update tenant")
	}
	return tenant, nil
}

// DeleteTenants removes a tenant. The identifier arrives unvalidated from the
// query string and is parsed here.
func (s *TenantService) DeleteTenants(ctx context.Context, rawID string) (*models.Result, error) {
	deleted, name, err := s.deleteTenant(ctx, rawID)
	s.record(opDelete, err)
	if err != nil {
		return nil, err
	}
	s.auditEmitter.emit(ctx, models.AuditEvent{
		Action:     models.AuditTenantDeleted,
		TenantID:   deleted.TenantID,
		TenantName: name,
		OccurredAt: deleted.DeletedAt,
	})
	return models.NewResult(http.StatusOK, deleted), nil
}

func (s *TenantService) deleteTenant(ctx context.Context, rawID string) (*models.Deletion, string, error) {
	tenantID, err := id.ParseTenantID(rawID)
	if err != nil {
		return nil, "", err
	}
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, "", wrapTenantErr(err, "failed to load tenant")
	}
	if err := s.tenants.Delete(ctx, tenantID); err != nil {
		return nil, "", wrapTenantErr(err, "failed to delete tenant")
	}
	return &models.Deletion{TenantID: tenantID, DeletedAt: s.now().UTC()}, tenant.Name, nil
}

func (s *TenantService) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := tenantmetrics.OutcomeSuccess
	if err != nil {
		outcome = tenantmetrics.OutcomeFailure
	}
	s.metrics.IncOperation(operation, outcome)
}

func (s *TenantService) incrementAuditFailed() {
	if s.metrics != nil {
		s.metrics.IncAuditFailed()
	}
}
