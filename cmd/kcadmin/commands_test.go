package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantadmin/internal/keycloak"
)

type fakeClient struct {
	tokenOK     bool
	created     keycloak.UserRequest
	createRes   keycloak.CreateUserResult
	lookups     []string
	usedToken   string
	tokenCalls  int
	lookupUsers []keycloak.User
}

func (f *fakeClient) FetchAdminToken(context.Context) (*keycloak.TokenResponse, bool) {
	f.tokenCalls++
	if !f.tokenOK {
		return nil, false
	}
	return &keycloak.TokenResponse{AccessToken: "fetched", TokenType: "Bearer"}, true
}

func (f *fakeClient) CreateUser(_ context.Context, req keycloak.UserRequest, token string) keycloak.CreateUserResult {
	f.created = req
	f.usedToken = token
	return f.createRes
}

func (f *fakeClient) EmailExists(_ context.Context, email, token string) (*keycloak.UsersResponse, error) {
	f.lookups = append(f.lookups, "email:"+email)
	f.usedToken = token
	return &keycloak.UsersResponse{Users: f.lookupUsers}, nil
}

func (f *fakeClient) UsernameExists(_ context.Context, username, token string) (*keycloak.UsersResponse, error) {
	f.lookups = append(f.lookups, "username:"+username)
	f.usedToken = token
	return &keycloak.UsersResponse{Users: f.lookupUsers}, nil
}

func run(t *testing.T, client *fakeClient, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func() (idpClient, error) { return client, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, &fakeClient{tokenOK: true}, "token")
	require.NoError(t, err)
	assert.Contains(t, out, `"access_token": "fetched"`)

	_, err = run(t, &fakeClient{}, "token")
	assert.ErrorIs(t, err, errTokenUnavailable)
}

func TestCreateUserCommand(t *testing.T) {
	t.Run("uses explicit token", func(t *testing.T) {
		client := &fakeClient{createRes: keycloak.CreateUserResult{UserID: "abc-123"}}
		out, err := run(t, client, "create-user", "--token", "given",
			"--name", "Ada Lovelace", "--username", "ada", "--password", "pw")
		require.NoError(t, err)
		assert.Equal(t, "abc-123\n", out)
		assert.Equal(t, "given", client.usedToken)
		assert.Equal(t, 0, client.tokenCalls)
		assert.Equal(t, "Ada Lovelace", client.created.Name)
	})

	t.Run("fetches token and surfaces message", func(t *testing.T) {
		client := &fakeClient{tokenOK: true, createRes: keycloak.CreateUserResult{Message: keycloak.MessagePasswordMissing}}
		_, err := run(t, client, "create-user", "--name", "Ada", "--username", "ada")
		assert.EqualError(t, err, keycloak.MessagePasswordMissing)
		assert.Equal(t, "fetched", client.usedToken)
	})
}

func TestExistsCommands(t *testing.T) {
	client := &fakeClient{tokenOK: true, lookupUsers: []keycloak.User{{ID: "u1"}}}
	out, err := run(t, client, "email-exists", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	client.lookupUsers = nil
	out, err = run(t, client, "username-exists", "ada")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
	assert.Equal(t, []string{"email:ada@example.com", "username:ada"}, client.lookups)
}

func TestRoleCommand(t *testing.T) {
	out, err := run(t, &fakeClient{}, "role", "beneficiary", "facilitator")
	require.NoError(t, err)
	assert.Equal(t, "role=facilitator group=facilitator\n", out)

	out, err = run(t, &fakeClient{}, "role")
	require.NoError(t, err)
	assert.Equal(t, "role=user group=beneficiary\n", out)
}
