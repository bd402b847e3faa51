package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "")
	require.NoError(t, Init("test"))
	assert.False(t, Enabled())

	ctx, span := StartSpan(context.Background(), "noop")
	span.End()
	_, _, ok := GetTraceFields(ctx)
	assert.False(t, ok)
}

func TestSpansAreExported(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(&buf, "test"))
	t.Cleanup(func() {
		_ = Shutdown(context.Background())
		enabled = false
	})

	ctx, span := StartSpan(context.Background(), "engine.Run")
	traceID, spanID, ok := GetTraceFields(ctx)
	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
	span.End()

	assert.Contains(t, buf.String(), "engine.Run")
}
