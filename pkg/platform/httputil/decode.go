package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "tenantadmin/pkg/domain-errors"
)

// Validatable is implemented by request types that check themselves.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that clean their own input.
type Normalizable interface {
	Normalize()
}

// PrepareRequest normalizes then validates req. Plain validation errors are
// coded as CodeValidation; domain errors keep their code.
func PrepareRequest(req any) error {
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	v, ok := req.(Validatable)
	if !ok {
		return nil
	}
	err := v.Validate()
	if err == nil {
		return nil
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.New(dErrors.CodeValidation, err.Error())
}

// DecodeJSONInto decodes body into dst. An empty body leaves dst untouched.
func DecodeJSONInto(body io.Reader, dst any) error {
	if body == nil {
		return nil
	}
	err := json.NewDecoder(body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return decodeError(err)
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return dErrors.New(dErrors.CodePayloadTooLarge, "request body too large")
	}
	return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
}
