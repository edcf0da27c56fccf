// Package domain holds typed identifiers parsed at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "tenantadmin/pkg/domain-errors"
)

const canonicalUUIDLen = 36

// TenantID identifies a tenant. It is a distinct type so a raw uuid.UUID
// cannot be passed where a tenant is expected.
type TenantID uuid.UUID

// NewTenantID returns a random tenant identifier.
func NewTenantID() TenantID {
	return TenantID(uuid.New())
}

// ParseTenantID parses a canonical hyphenated UUID string. Empty, malformed and
// non-canonical encodings (braces, urn prefix, bare hex) are rejected with
// CodeInvalidInput.
func ParseTenantID(s string) (TenantID, error) {
	if s == "" {
		return TenantID{}, dErrors.New(dErrors.CodeInvalidInput, "tenant ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil || len(s) != canonicalUUIDLen {
		return TenantID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid tenant ID format")
	}
	return TenantID(parsed), nil
}

func (id TenantID) String() string { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
