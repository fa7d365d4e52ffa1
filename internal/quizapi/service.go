// Package quizapi is the client side of the quiz service: request and
// response types, an HTTP implementation, response validation, an event
// logging decorator and a deterministic mock.
package quizapi

import (
	"context"

	"github.com/abhisek/smartest/internal/catalog"
)

// Service is the remote quiz service. Calls that reach the service return a
// response whose OK field reports success; only transport failures and
// malformed bodies are returned as errors.
type Service interface {
	FetchCatalog(ctx context.Context) (*catalog.Catalog, error)
	GenerateQuestion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	CheckAnswer(ctx context.Context, req CheckRequest) (*CheckResponse, error)
	GenerateTest(ctx context.Context, req TestRequest) (*TestResponse, error)
}

// Operation names used in errors and request events.
const (
	OpCatalog  = "catalog"
	OpGenerate = "generate"
	OpCheck    = "check"
	OpTest     = "test"
)
