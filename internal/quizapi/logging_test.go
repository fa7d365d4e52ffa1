package quizapi

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/smartest/internal/store"
)

type recordingRepo struct {
	events []store.RequestEventData
	err    error
}

func (r *recordingRepo) AppendRequest(_ context.Context, data store.RequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingRepo) RecentRequests(context.Context, store.QueryOpts) ([]store.RequestEvent, error) {
	return nil, nil
}

func (r *recordingRepo) RequestStats(context.Context) ([]store.OperationStats, error) {
	return nil, nil
}

func TestWithLogging_RecordsRequestContext(t *testing.T) {
	mock := NewMockService().AddGenerate(QuestionResult(Question{ID: "q1"}))
	repo := &recordingRepo{}
	svc := WithLogging(mock, repo)

	ctx := WithSlot(WithRequestID(context.Background(), "req-1"), "practice")
	resp, err := svc.GenerateQuestion(ctx, GenerateRequest{})
	if err != nil || resp.Question.ID != "q1" {
		t.Fatalf("GenerateQuestion = %+v, %v", resp, err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Operation != OpGenerate || e.RequestID != "req-1" || e.Slot != "practice" || !e.Success || e.Status != 200 {
		t.Errorf("event = %+v", e)
	}
}

func TestWithLogging_RecordsFailures(t *testing.T) {
	mock := NewMockService().
		AddCheck(MockResult{Check: &CheckResponse{Status: 400, Error: "bad answer"}}).
		AddCheck(MockResult{Err: &ErrRequestFailed{Op: OpCheck, Status: 503, Err: errors.New("down")}})
	repo := &recordingRepo{}
	svc := WithLogging(mock, repo)

	svc.CheckAnswer(context.Background(), CheckRequest{})
	_, err := svc.CheckAnswer(context.Background(), CheckRequest{})
	if err == nil {
		t.Fatal("expected error from second call")
	}

	if len(repo.events) != 2 {
		t.Fatalf("events = %d, want 2", len(repo.events))
	}
	if e := repo.events[0]; e.Success || e.Status != 400 || e.ErrorMessage != "bad answer" || e.Slot != "unknown" {
		t.Errorf("not-ok event = %+v", e)
	}
	if e := repo.events[1]; e.Success || e.Status != 503 || e.ErrorMessage == "" {
		t.Errorf("error event = %+v", e)
	}
}

func TestWithLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockService().AddTest(MockResult{Test: &TestResponse{OK: true, Status: 200}})
	svc := WithLogging(mock, &recordingRepo{err: errors.New("disk full")})

	resp, err := svc.GenerateTest(context.Background(), TestRequest{Count: 1})
	if err != nil || !resp.OK {
		t.Fatalf("GenerateTest = %+v, %v", resp, err)
	}
}
