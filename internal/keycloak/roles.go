package keycloak

import "slices"

// Role and group labels.
const (
	RoleSystemAdmin = "systemAdmin"
	RoleFacilitator = "facilitator"
	RoleBeneficiary = "beneficiary"
	RoleUser        = "user"
)

// DeriveRole picks the most privileged known role in claims, else RoleUser.
func DeriveRole(claims []string) string {
	for _, role := range []string{RoleSystemAdmin, RoleFacilitator, RoleBeneficiary} {
		if slices.Contains(claims, role) {
			return role
		}
	}
	return RoleUser
}

// DeriveGroup maps a role to its group. Everything below facilitator,
// including unknown roles, lands in the beneficiary group.
func DeriveGroup(role string) string {
	switch role {
	case RoleSystemAdmin:
		return RoleSystemAdmin
	case RoleFacilitator:
		return RoleFacilitator
	default:
		return RoleBeneficiary
	}
}
