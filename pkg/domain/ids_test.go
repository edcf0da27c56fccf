package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tenantadmin/pkg/domain-errors"
)

func TestParseTenantID(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		raw := uuid.NewString()
		id, err := ParseTenantID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
		assert.False(t, id.IsNil())
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := ParseTenantID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseTenantID("not-a-uuid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid tenant ID format")
	})

	t.Run("non-canonical encodings", func(t *testing.T) {
		raw := uuid.New()
		for _, s := range []string{
			"{" + raw.String() + "}",
			"urn:uuid:" + raw.String(),
			strings.ReplaceAll(raw.String(), "-", ""),
		} {
			_, err := ParseTenantID(s)
			assert.Error(t, err, s)
		}
	})

	t.Run("nil uuid parses but reports nil", func(t *testing.T) {
		id, err := ParseTenantID(uuid.Nil.String())
		require.NoError(t, err)
		assert.True(t, id.IsNil())
	})
}

func TestNewTenantID(t *testing.T) {
	assert.NotEqual(t, NewTenantID(), NewTenantID())
}
