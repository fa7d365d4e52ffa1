package quizapi

import "context"

type contextKey string

const (
	requestIDKey contextKey = "quizapi_request_id"
	slotKey      contextKey = "quizapi_slot"
)

// WithRequestID attaches the lifecycle request id for event logging.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the request id from the context.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithSlot attaches a label naming the question slot a request belongs to.
func WithSlot(ctx context.Context, slot string) context.Context {
	return context.WithValue(ctx, slotKey, slot)
}

// SlotFrom extracts the slot label from the context.
func SlotFrom(ctx context.Context) string {
	if v, ok := ctx.Value(slotKey).(string); ok {
		return v
	}
	return "unknown"
}
