package models

import (
	"time"

	id "tenantadmin/pkg/domain"
)

// Result is a complete service outcome: the dispatcher writes Status and
// Headers as given and renders Body through its allow-list presenter.
type Result struct {
	Status  int
	Headers map[string]string
	Body    any
}

func NewResult(status int, body any) *Result {
	return &Result{Status: status, Body: body}
}

// WithHeader sets a response header on the result.
func (r *Result) WithHeader(key, value string) *Result {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// TenantList is the read outcome.
type TenantList struct {
	Tenants []*Tenant
}

// Deletion is the delete outcome.
type Deletion struct {
	TenantID  id.TenantID
	DeletedAt time.Time
}
