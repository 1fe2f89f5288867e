// Package telemetry provides per-request trace ids.
package telemetry

import (
	"context"

	"github.com/google/uuid"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

// NoTrace is reported for contexts that never passed through SetTraceID.
const NoTrace = "00000000-0000-0000-0000-000000000000"

// Telemetry hands out and reads request trace ids.
type Telemetry struct{}

// NewTelemetry creates a new telemetry instance
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a fresh random trace id in the context.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.NewString())
}

// WithTraceID stores the given trace id when it parses as a UUID and falls
// back to a fresh one otherwise.
func (t Telemetry) WithTraceID(ctx context.Context, traceID string) context.Context {
	id, err := uuid.Parse(traceID)
	if err != nil {
		return t.SetTraceID(ctx)
	}
	return context.WithValue(ctx, traceIDKey, id.String())
}

func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return NoTrace
	}

	return v
}
