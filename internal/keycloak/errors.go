package keycloak

import (
	"encoding/json"
	"fmt"
)

// HTTPError is a non-2xx provider response.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// ProviderMessage returns the provider's own error text, if the body carries one.
func (e *HTTPError) ProviderMessage() string {
	var body struct {
		Error        string `json:"error"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.ErrorMessage
}
