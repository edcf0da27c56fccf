package keycloak

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestRoleFromToken(t *testing.T) {
	t.Run("reads realm roles", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"sub":          "user-1",
			"realm_access": map[string]any{"roles": []string{"offline_access", "facilitator"}},
		})

		roles, err := RealmRoles(token)
		require.NoError(t, err)
		assert.Equal(t, []string{"offline_access", "facilitator"}, roles)

		role, err := RoleFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, RoleFacilitator, role)
	})

	t.Run("missing realm access is plain user", func(t *testing.T) {
		role, err := RoleFromToken(signedToken(t, jwt.MapClaims{"sub": "user-2"}))
		require.NoError(t, err)
		assert.Equal(t, RoleUser, role)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := RoleFromToken("not.a.jwt")
		assert.Error(t, err)
	})
}
