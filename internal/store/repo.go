package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session value does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// RequestEventData captures one call to the quiz service.
type RequestEventData struct {
	Operation    string
	RequestID    string
	Slot         string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEvent is a stored RequestEventData with its ordering fields.
type RequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	RequestEventData
}

// OperationStats aggregates request events for one operation.
type OperationStats struct {
	Operation    string
	Count        int
	Failures     int
	AvgLatencyMs float64
}

// EventRepo provides append and query access to request events.
type EventRepo interface {
	// AppendRequest records a quiz service call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// RecentRequests returns events newest first.
	RecentRequests(ctx context.Context, opts QueryOpts) ([]RequestEvent, error)

	// RequestStats aggregates events per operation, ordered by operation.
	RequestStats(ctx context.Context) ([]OperationStats, error)
}

// SessionRepo is session-scoped key/value storage for opaque payloads.
type SessionRepo interface {
	// Save writes payload under (scope, key), replacing any previous value.
	Save(ctx context.Context, scope, key string, payload []byte) error

	// Load returns the payload under (scope, key) or ErrNotFound.
	Load(ctx context.Context, scope, key string) ([]byte, error)

	// Delete removes (scope, key). Deleting a missing value is not an error.
	Delete(ctx context.Context, scope, key string) error
}
