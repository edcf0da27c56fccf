package models

// CreatePayload is the normalized tenant creation input handed to the service.
// ProgramImages holds stored upload paths, in request order.
type CreatePayload struct {
	Name          string
	Domain        *string
	Description   *string
	Status        TenantStatus
	Params        map[string]any
	ProgramImages []string
	CreatedBy     *string
}

// UpdatePayload is a partial update. Nil pointers mean "leave unchanged".
type UpdatePayload struct {
	Name          *string
	Domain        *string
	Description   *string
	Status        *TenantStatus
	Params        map[string]any
	ProgramImages []string
	UpdatedBy     *string
}
