package handler

import (
	"encoding/json"
	"net/url"
	"strings"

	"tenantadmin/internal/tenant/models"
	dErrors "tenantadmin/pkg/domain-errors"
	s "tenantadmin/pkg/string"
	"tenantadmin/pkg/validation"
)

// CreateTenantRequest is the create body. It binds from JSON or from
// multipart form fields; params arrives in forms as a JSON object string.
type CreateTenantRequest struct {
	Name        string         `json:"name" form:"name" validate:"required,notblank,max=128"`
	Domain      *string        `json:"domain,omitempty" form:"domain" validate:"omitempty,fqdn"`
	Description *string        `json:"description,omitempty" form:"description" validate:"omitempty,max=1024"`
	Status      string         `json:"status,omitempty" form:"status" validate:"omitempty,oneof=active inactive archived"`
	Params      map[string]any `json:"params,omitempty" form:"params"`
}

func (r *CreateTenantRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Domain = normalizeDomain(r.Domain)
	r.Description = s.TrimSpacePtr(r.Description)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

func (r *CreateTenantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *CreateTenantRequest) bindForm(v url.Values) error {
	r.Name = v.Get("name")
	r.Domain = formPtr(v, "domain")
	r.Description = formPtr(v, "description")
	r.Status = v.Get("status")
	params, err := formParams(v)
	if err != nil {
		return err
	}
	r.Params = params
	return nil
}

// ToPayload always sets ProgramImages, so a create without files stores an empty list.
func (r *CreateTenantRequest) ToPayload(images []string, actor *string) *models.CreatePayload {
	return &models.CreatePayload{
		Name:          r.Name,
		Domain:        r.Domain,
		Description:   r.Description,
		Status:        models.TenantStatus(r.Status),
		Params:        r.Params,
		ProgramImages: nonNil(images),
		CreatedBy:     actor,
	}
}

// UpdateTenantRequest is a partial update; absent fields stay unchanged.
type UpdateTenantRequest struct {
	Name        *string        `json:"name,omitempty" form:"name" validate:"omitempty,notblank,max=128"`
	Domain      *string        `json:"domain,omitempty" form:"domain" validate:"omitempty,fqdn"`
	Description *string        `json:"description,omitempty" form:"description" validate:"omitempty,max=1024"`
	Status      *string        `json:"status,omitempty" form:"status" validate:"omitempty,oneof=active inactive archived"`
	Params      map[string]any `json:"params,omitempty" form:"params"`
}

func (r *UpdateTenantRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = s.TrimSpacePtr(r.Name)
	r.Domain = normalizeDomain(r.Domain)
	r.Description = s.TrimSpacePtr(r.Description)
	if r.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &status
	}
}

func (r *UpdateTenantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name must not be blank")
	}
	return validation.Validate(r)
}

func (r *UpdateTenantRequest) bindForm(v url.Values) error {
	r.Name = formPtr(v, "name")
	r.Domain = formPtr(v, "domain")
	r.Description = formPtr(v, "description")
	r.Status = formPtr(v, "status")
	params, err := formParams(v)
	if err != nil {
		return err
	}
	r.Params = params
	return nil
}

func (r *UpdateTenantRequest) ToPayload(images []string, actor *string) *models.UpdatePayload {
	payload := &models.UpdatePayload{
		Name:          r.Name,
		Domain:        r.Domain,
		Description:   r.Description,
		Params:        r.Params,
		ProgramImages: nonNil(images),
		UpdatedBy:     actor,
	}
	if r.Status != nil {
		status := models.TenantStatus(*r.Status)
		payload.Status = &status
	}
	return payload
}

// formPtr distinguishes an absent field (nil) from an empty one.
func formPtr(v url.Values, key string) *string {
	if !v.Has(key) {
		return nil
	}
	val := v.Get(key)
	return &val
}

func formParams(v url.Values) (map[string]any, error) {
	raw := strings.TrimSpace(v.Get("params"))
	if raw == "" {
		return nil, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "params must be a JSON object")
	}
	return params, nil
}

func normalizeDomain(domain *string) *string {
	if domain == nil {
		return nil
	}
	d := strings.ToLower(strings.TrimSpace(*domain))
	return &d
}

func nonNil(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
