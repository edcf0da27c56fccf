// Package tracer lets the upload service and the identity-provider client emit
// spans without importing OpenTelemetry directly. NewNoop serves tests and the
// CLI; NewOTel serves the server.
package tracer

import "context"

// Span is an active trace span.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	// Call it exactly once, usually via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)
}

// Tracer starts spans and is safe for concurrent use.
//
//	ctx, span := t.Start(ctx, tracer.SpanKeycloakCreateUser,
//	    tracer.String(tracer.AttrHTTPMethod, http.MethodPost),
//	)
//	defer func() { span.End(err) }()
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans. Value is a string, int
// or int64.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Identity-provider calls.
const (
	SpanKeycloakToken         = "keycloak.token"
	SpanKeycloakCreateUser    = "keycloak.create_user"
	SpanKeycloakEmailExists   = "keycloak.email_exists"
	SpanKeycloakUsernameExist = "keycloak.username_exists"
)

// Upload storage.
const SpanUploadSave = "upload.save"

const (
	AttrHTTPMethod     = "http.method"
	AttrHTTPStatusCode = "http.status_code"
	AttrUploadBackend  = "upload.backend"
	AttrUploadSize     = "upload.size_bytes"
)
