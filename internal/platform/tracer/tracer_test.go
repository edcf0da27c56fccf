package tracer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"tenantadmin/internal/platform/tracer"
)

func TestNoopTracerKeepsContext(t *testing.T) {
	ctx := context.Background()

	newCtx, span := tracer.NewNoop().Start(ctx, tracer.SpanKeycloakToken, tracer.String(tracer.AttrHTTPMethod, "POST"))
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Int(tracer.AttrHTTPStatusCode, 200))
	span.End(errors.New("boom"))
}

func TestOTelTracerWithProvider(t *testing.T) {
	tr := tracer.NewOTelWithProvider(noop.NewTracerProvider())

	ctx, span := tr.Start(context.Background(), tracer.SpanUploadSave,
		tracer.String(tracer.AttrUploadBackend, "local"),
		tracer.Int64(tracer.AttrUploadSize, 42),
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	assert.NotPanics(t, func() {
		span.SetAttributes(tracer.Int(tracer.AttrHTTPStatusCode, 201), tracer.Attribute{Key: "other", Value: 1.5})
		span.End(errors.New("upstream failed"))
	})
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, tracer.Attribute{Key: "k", Value: "v"}, tracer.String("k", "v"))
	assert.Equal(t, tracer.Attribute{Key: "n", Value: int64(7)}, tracer.Int64("n", 7))
	assert.Equal(t, tracer.Attribute{Key: "i", Value: 3}, tracer.Int("i", 3))
}
