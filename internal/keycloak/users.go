package keycloak

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"tenantadmin/internal/platform/tracer"
)

// MessagePasswordMissing is returned by CreateUser when no password is given.
const MessagePasswordMissing = "User cannot be created, Password missing"

const createUserErrorPrefix = "Error creating user: "

// UserRequest is the input for CreateUser. Name is split on spaces.
type UserRequest struct {
	Name     string
	Username string
	Password string
	Role     string
}

// CreateUserResult holds either the new user's ID or a failure message.
type CreateUserResult struct {
	UserID  string
	Message string
}

func (r CreateUserResult) OK() bool {
	return r.UserID != "" && r.Message == ""
}

type credential struct {
	Temporary bool   `json:"temporary"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

type userRepresentation struct {
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Enabled     bool         `json:"enabled"`
	Username    string       `json:"username"`
	Credentials []credential `json:"credentials"`
}

// SplitName returns the first token as first name. The last name is the third
// token when present, otherwise the second; later tokens are dropped.
func SplitName(name string) (first, last string) {
	parts := strings.Split(name, " ")
	first = parts[0]
	switch {
	case len(parts) > 2 && parts[2] != "":
		last = parts[2]
	case len(parts) > 1:
		last = parts[1]
	}
	return first, last
}

// CreateUser creates an enabled user with a permanent password. Without a
// password it returns MessagePasswordMissing and makes no call.
func (c *Client) CreateUser(ctx context.Context, req UserRequest, token string) CreateUserResult {
	if req.Password == "" {
		return CreateUserResult{Message: MessagePasswordMissing}
	}

	first, last := SplitName(req.Name)
	body, err := json.Marshal(userRepresentation{
		FirstName: first,
		LastName:  last,
		Enabled:   true,
		Username:  req.Username,
		Credentials: []credential{{
			Temporary: false,
			Type:      "password",
			Value:     req.Password,
		}},
	})
	if err != nil {
		return CreateUserResult{Message: createUserErrorPrefix + err.Error()}
	}

	resp, err := c.send(ctx, opCreateUser, tracer.SpanKeycloakCreateUser, apiRequest{
		method: http.MethodPost,
		url:    c.adminURL(),
		header: bearer(token),
		body:   body,
	})
	if err != nil {
		return CreateUserResult{Message: createUserErrorPrefix + providerReason(err)}
	}

	location := resp.Header.Get("Location")
	userID := location[strings.LastIndex(location, "/")+1:]
	if userID == "" {
		return CreateUserResult{Message: createUserErrorPrefix + "response has no Location header"}
	}
	return CreateUserResult{UserID: userID}
}

// providerReason prefers the error text reported by the provider.
func providerReason(err error) string {
	if httpErr, ok := err.(*HTTPError); ok {
		if msg := httpErr.ProviderMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

// User is the subset of the provider's user representation we read back.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Enabled   bool   `json:"enabled"`
}

// UsersResponse is a successful user search.
type UsersResponse struct {
	StatusCode int
	Users      []User
	Body       []byte
}

// Exists reports whether the search matched any user.
func (r *UsersResponse) Exists() bool {
	return r != nil && len(r.Users) > 0
}

// EmailExists searches users by email. On failure it logs once and returns
// the failure itself.
func (c *Client) EmailExists(ctx context.Context, email, token string) (*UsersResponse, error) {
	return c.searchUsers(ctx, opEmailExists, tracer.SpanKeycloakEmailExists, "email",
		"?email="+url.QueryEscape(email), token)
}

// UsernameExists searches users by exact username. Failure handling matches EmailExists.
func (c *Client) UsernameExists(ctx context.Context, username, token string) (*UsersResponse, error) {
	return c.searchUsers(ctx, opUsernameExists, tracer.SpanKeycloakUsernameExist, "username",
		"?username="+url.QueryEscape(username)+"&exact=true", token)
}

func (c *Client) searchUsers(ctx context.Context, operation, span, field, query, token string) (*UsersResponse, error) {
	resp, err := c.send(ctx, operation, span, apiRequest{
		method: http.MethodGet,
		url:    c.adminURL() + query,
		header: bearer(token),
	})
	if err != nil {
		c.logger.Error(CategoryServerError, `Error: "Keycloak error - `+field+`" `+err.Error())
		return nil, err
	}

	out := &UsersResponse{StatusCode: resp.StatusCode, Body: resp.Body}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &out.Users); err != nil {
			c.logger.Error(CategoryServerError, `Error: "Keycloak error - `+field+`" `+err.Error())
			return nil, err
		}
	}
	return out, nil
}
