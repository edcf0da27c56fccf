package handler

import (
	"time"

	"tenantadmin/internal/tenant/models"
)

// Response DTOs are the only shapes written to clients; service results are
// mapped field by field so nothing unlisted is serialized.

type TenantResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Domain        *string        `json:"domain"`
	Description   *string        `json:"description"`
	Status        string         `json:"status"`
	Params        map[string]any `json:"params"`
	ProgramImages []string       `json:"programImages"`
	CreatedBy     *string        `json:"createdBy"`
	UpdatedBy     *string        `json:"updatedBy"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
	Count   int              `json:"count"`
}

type DeletionResponse struct {
	ID        string    `json:"id"`
	Deleted   bool      `json:"deleted"`
	DeletedAt time.Time `json:"deletedAt"`
}

func toTenantResponse(t *models.Tenant) TenantResponse {
	return TenantResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		Domain:        t.Domain,
		Description:   t.Description,
		Status:        t.Status.String(),
		Params:        t.Params,
		ProgramImages: nonNil(t.ProgramImages),
		CreatedBy:     t.CreatedBy,
		UpdatedBy:     t.UpdatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// present maps a result body onto its response DTO. Unknown body types are
// dropped rather than serialized.
func present(body any) any {
	switch b := body.(type) {
	case *models.Tenant:
		return toTenantResponse(b)
	case *models.TenantList:
		out := TenantListResponse{Tenants: make([]TenantResponse, 0, len(b.Tenants))}
		for _, t := range b.Tenants {
			out.Tenants = append(out.Tenants, toTenantResponse(t))
		}
		out.Count = len(out.Tenants)
		return out
	case *models.Deletion:
		return DeletionResponse{ID: b.TenantID.String(), Deleted: true, DeletedAt: b.DeletedAt}
	default:
		return nil
	}
}
