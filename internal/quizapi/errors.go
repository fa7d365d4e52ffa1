package quizapi

import (
	"encoding/json"
	"fmt"
)

// ErrRequestFailed indicates the service could not be reached or answered
// a call that has no ok/error envelope with a failure status.
type ErrRequestFailed struct {
	Op     string
	Status int
	Err    error
}

func (e *ErrRequestFailed) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s request failed (%d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *ErrRequestFailed) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the service answered with a body that is not
// JSON or does not match the operation's response schema.
type ErrInvalidResponse struct {
	Op      string
	Status  int
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid %s response: %v", e.Op, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
