package contextutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "unknown-trace-id", TraceIDFromContext(ctx))
	require.Equal(t, "unknown-trace-id", TraceIDFromContext(WithTraceID(ctx, "")))

	traceID := NewTraceID()
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)
	require.Equal(t, traceID, TraceIDFromContext(WithTraceID(ctx, traceID)))
	require.NotEqual(t, traceID, NewTraceID())
}
