package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "tenantadmin/pkg/domain"
	dErrors "tenantadmin/pkg/domain-errors"
)

// MaxNameLength bounds tenant names.
const MaxNameLength = 128

// Tenant is the stored organisational entity. It carries no serialization
// tags; the handler maps it to an explicit response shape.
type Tenant struct {
	ID            id.TenantID
	Name          string
	Domain        *string
	Description   *string
	Status        TenantStatus
	Params        map[string]any
	ProgramImages []string
	CreatedBy     *string
	UpdatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTenant builds a tenant from a create payload. Status defaults to active.
func NewTenant(tenantID id.TenantID, p *CreatePayload, now time.Time) (*Tenant, error) {
	if p == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant payload is required")
	}
	name := strings.TrimSpace(p.Name)
	if err := checkName(name); err != nil {
		return nil, err
	}
	status := p.Status
	if status == "" {
		status = TenantStatusActive
	}
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be one of [active inactive archived]")
	}
	return &Tenant{
		ID:            tenantID,
		Name:          name,
		Domain:        p.Domain,
		Description:   p.Description,
		Status:        status,
		Params:        cloneParams(p.Params),
		ProgramImages: cloneImages(p.ProgramImages),
		CreatedBy:     p.CreatedBy,
		UpdatedBy:     p.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Apply merges an update payload. Nil fields are left unchanged; the image
// list and the updating actor are always replaced.
func (t *Tenant) Apply(p *UpdatePayload, now time.Time) error {
	if p == nil {
		return dErrors.New(dErrors.CodeBadRequest, "tenant payload is required")
	}
	name := t.Name
	if p.Name != nil {
		name = strings.TrimSpace(*p.Name)
		if err := checkName(name); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be one of [active inactive archived]")
	}

	t.Name = name
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Domain != nil {
		t.Domain = p.Domain
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Params != nil {
		t.Params = cloneParams(p.Params)
	}
	t.ProgramImages = cloneImages(p.ProgramImages)
	t.UpdatedBy = p.UpdatedBy
	t.UpdatedAt = now
	return nil
}

// Clone returns a deep copy; nested params objects and arrays are copied too,
// so stores never share mutable state with callers.
func (t *Tenant) Clone() *Tenant {
	if t == nil {
		return nil
	}
	c := *t
	c.Params = cloneParams(t.Params)
	c.ProgramImages = cloneImages(t.ProgramImages)
	return &c
}

func checkName(name string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 128")
	}
	return nil
}

func cloneParams(p map[string]any) map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return cloneValue(p).(map[string]any)
}

// cloneValue copies the JSON-shaped values params can hold.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneImages(images []string) []string {
	out := make([]string, len(images))
	copy(out, images)
	return out
}
