// Package sentinel defines the errors stores return so services can translate
// them into domain errors in one place.
package sentinel

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	ErrUnavailable = errors.New("unavailable")
)
