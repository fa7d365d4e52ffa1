package testsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/store"
)

// PayloadKey is the session-scoped storage key of the active test.
const PayloadKey = "smartest_last_test"

// ErrNoTest is returned by Load when no usable test is stored.
var ErrNoTest = errors.New("no test data found, generate a test first")

// Payload is the persisted form of a generated test.
type Payload struct {
	OK   bool               `json:"ok"`
	Test []quizapi.Question `json:"test"`
}

// PayloadFrom converts a successful batch generation into a Payload.
func PayloadFrom(resp *quizapi.TestResponse) (Payload, error) {
	if resp == nil {
		return Payload{}, fmt.Errorf("empty test response")
	}
	if !resp.OK {
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("Failed to generate test (%d)", resp.Status)
		}
		return Payload{}, errors.New(msg)
	}
	return Payload{OK: true, Test: resp.Questions}, nil
}

// Load reads the stored test once. Missing, undecodable or not-ok payloads
// yield ErrNoTest; storage failures are returned wrapped.
func Load(ctx context.Context, repo store.SessionRepo, scope string) (Payload, error) {
	raw, err := repo.Load(ctx, scope, PayloadKey)
	if errors.Is(err, store.ErrNotFound) {
		return Payload{}, ErrNoTest
	}
	if err != nil {
		return Payload{}, fmt.Errorf("load test payload: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil || !p.OK || p.Test == nil {
		return Payload{}, ErrNoTest
	}
	return p, nil
}

// Save stores p as the active test for scope.
func Save(ctx context.Context, repo store.SessionRepo, scope string, p Payload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal test payload: %w", err)
	}
	if err := repo.Save(ctx, scope, PayloadKey, raw); err != nil {
		return fmt.Errorf("save test payload: %w", err)
	}
	return nil
}

// Clear removes the active test for scope.
func Clear(ctx context.Context, repo store.SessionRepo, scope string) error {
	return repo.Delete(ctx, scope, PayloadKey)
}
