package models

import (
	"time"

	id "tenantadmin/pkg/domain"
)

// AuditAction names what happened to a tenant.
type AuditAction string

const (
	AuditTenantCreated AuditAction = "tenant_created"
	AuditTenantUpdated AuditAction = "tenant_updated"
	AuditTenantDeleted AuditAction = "tenant_deleted"
)

// AuditEvent is published after a successful tenant mutation. Actor is the
// userId query parameter, empty when none was given.
type AuditEvent struct {
	Action     AuditAction
	TenantID   id.TenantID
	TenantName string
	Actor      string
	RequestID  string
	OccurredAt time.Time
}
