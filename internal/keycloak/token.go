package keycloak

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"tenantadmin/internal/platform/tracer"
)

// TokenResponse is the provider's password-grant response.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
}

// FetchAdminToken exchanges the configured admin credentials for a token.
// On failure it logs and reports false; the error never reaches the caller.
func (c *Client) FetchAdminToken(ctx context.Context) (*TokenResponse, bool) {
	form := url.Values{}
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)
	form.Set("grant_type", "password")
	form.Set("client_id", adminClientID)

	header := make(http.Header)
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.send(ctx, opToken, tracer.SpanKeycloakToken, apiRequest{
		method: http.MethodPost,
		url:    c.cfg.BaseURL + c.cfg.TokenPath,
		header: header,
		body:   []byte(form.Encode()),
	})
	if err != nil {
		c.logger.Error(CategoryServerError, "Error: "+err.Error())
		return nil, false
	}

	var token TokenResponse
	if err := json.Unmarshal(resp.Body, &token); err != nil {
		c.logger.Error(CategoryServerError, "Error: decode token response: "+err.Error())
		return nil, false
	}
	return &token, true
}
