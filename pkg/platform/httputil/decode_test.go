package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tenantadmin/pkg/domain-errors"
)

type plainRequest struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type checkedRequest struct {
	Name       string `json:"name"`
	normalized bool
}

func (r *checkedRequest) Normalize() {
	r.normalized = true
}

func (r *checkedRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type codedRequest struct {
	ID string `json:"id"`
}

func (r *codedRequest) Validate() error {
	if r.ID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	return nil
}

func TestDecodeJSONInto(t *testing.T) {
	t.Run("empty body leaves target untouched", func(t *testing.T) {
		dst := plainRequest{Name: "kept"}
		require.NoError(t, DecodeJSONInto(bytes.NewReader(nil), &dst))
		assert.Equal(t, "kept", dst.Name)
	})

	t.Run("nil body", func(t *testing.T) {
		var dst plainRequest
		assert.NoError(t, DecodeJSONInto(nil, &dst))
	})

	t.Run("decodes body", func(t *testing.T) {
		var dst plainRequest
		require.NoError(t, DecodeJSONInto(bytes.NewBufferString(`{"name":"acme","value":7}`), &dst))
		assert.Equal(t, "acme", dst.Name)
		assert.Equal(t, 7, dst.Value)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		var dst plainRequest
		err := DecodeJSONInto(bytes.NewBufferString(`[`), &dst)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("oversized body is payload too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"0123456789"}`))
		body := http.MaxBytesReader(httptest.NewRecorder(), req.Body, 4)

		var dst plainRequest
		err := DecodeJSONInto(body, &dst)
		assert.True(t, dErrors.HasCode(err, dErrors.CodePayloadTooLarge))
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(dErrors.New(dErrors.CodeInvalidInput, "bad id")))
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("wrapped: %w", dErrors.New(dErrors.CodeNotFound, "gone"))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestPrepareRequest(t *testing.T) {
	t.Run("normalizes before validating", func(t *testing.T) {
		req := &checkedRequest{Name: "acme"}
		require.NoError(t, PrepareRequest(req))
		assert.True(t, req.normalized)
	})

	t.Run("plain error becomes validation error", func(t *testing.T) {
		err := PrepareRequest(&checkedRequest{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("domain error keeps its code", func(t *testing.T) {
		err := PrepareRequest(&codedRequest{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("types without hooks pass", func(t *testing.T) {
		assert.NoError(t, PrepareRequest(&plainRequest{}))
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", dErrors.New(dErrors.CodeValidation, "name is required"), http.StatusBadRequest, "validation_error"},
		{"invalid input", dErrors.New(dErrors.CodeInvalidInput, "invalid tenant ID format"), http.StatusBadRequest, "bad_request"},
		{"not found", dErrors.New(dErrors.CodeNotFound, "tenant not found"), http.StatusNotFound, "not_found"},
		{"conflict", dErrors.New(dErrors.CodeConflict, "taken"), http.StatusConflict, "conflict"},
		{"too large", dErrors.New(dErrors.CodePayloadTooLarge, "big"), http.StatusRequestEntityTooLarge, "payload_too_large"},
		{"plain error", errors.New("db exploded"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "db exploded")
			}
		})
	}
}
