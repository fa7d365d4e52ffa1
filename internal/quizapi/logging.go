package quizapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/store"
)

// LoggingService is a decorator that records every service call as an event.
type LoggingService struct {
	inner     Service
	eventRepo store.EventRepo
}

// WithLogging wraps a Service with event logging.
func WithLogging(s Service, repo store.EventRepo) Service {
	return &LoggingService{inner: s, eventRepo: repo}
}

func (l *LoggingService) FetchCatalog(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	cat, err := l.inner.FetchCatalog(ctx)
	status := 0
	if err == nil {
		status = 200
	}
	l.record(ctx, OpCatalog, start, status, err == nil, "", err)
	return cat, err
}

func (l *LoggingService) GenerateQuestion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	resp, err := l.inner.GenerateQuestion(ctx, req)
	var (
		status int
		ok     bool
		msg    string
	)
	if resp != nil {
		status, ok, msg = resp.Status, resp.OK, resp.Error
	}
	l.record(ctx, OpGenerate, start, status, ok, msg, err)
	return resp, err
}

func (l *LoggingService) CheckAnswer(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	start := time.Now()
	resp, err := l.inner.CheckAnswer(ctx, req)
	var (
		status int
		ok     bool
		msg    string
	)
	if resp != nil {
		status, ok, msg = resp.Status, resp.OK, resp.Error
	}
	l.record(ctx, OpCheck, start, status, ok, msg, err)
	return resp, err
}

func (l *LoggingService) GenerateTest(ctx context.Context, req TestRequest) (*TestResponse, error) {
	start := time.Now()
	resp, err := l.inner.GenerateTest(ctx, req)
	var (
		status int
		ok     bool
		msg    string
	)
	if resp != nil {
		status, ok, msg = resp.Status, resp.OK, resp.Error
	}
	l.record(ctx, OpTest, start, status, ok, msg, err)
	return resp, err
}

func (l *LoggingService) record(ctx context.Context, op string, start time.Time, status int, ok bool, msg string, err error) {
	data := store.RequestEventData{
		Operation:    op,
		RequestID:    RequestIDFrom(ctx),
		Slot:         SlotFrom(ctx),
		Status:       status,
		LatencyMs:    time.Since(start).Milliseconds(),
		Success:      err == nil && ok,
		ErrorMessage: msg,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		data.Status = errorStatus(err)
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log %s request event: %v\n", op, logErr)
	}
}

func errorStatus(err error) int {
	var failed *ErrRequestFailed
	if errors.As(err, &failed) {
		return failed.Status
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return invalid.Status
	}
	return 0
}
