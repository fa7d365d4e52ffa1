package quizapi

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/smartest/internal/catalog"
)

// MockResult is a canned outcome for one MockService call. Exactly one of
// the response fields matching the call should be set, or Err.
type MockResult struct {
	Generate *GenerateResponse
	Check    *CheckResponse
	Test     *TestResponse
	Err      error
}

// MockService is a deterministic Service for testing. Each operation has
// its own FIFO queue of canned results; all requests are recorded.
type MockService struct {
	mu sync.Mutex

	Catalog    *catalog.Catalog
	CatalogErr error

	generate []MockResult
	check    []MockResult
	test     []MockResult

	GenerateCalls []GenerateRequest
	CheckCalls    []CheckRequest
	TestCalls     []TestRequest
}

// NewMockService creates an empty MockService.
func NewMockService() *MockService {
	return &MockService{}
}

// AddGenerate queues a generate outcome.
func (m *MockService) AddGenerate(r MockResult) *MockService {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generate = append(m.generate, r)
	return m
}

// AddCheck queues a check outcome.
func (m *MockService) AddCheck(r MockResult) *MockService {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.check = append(m.check, r)
	return m
}

// AddTest queues a test generation outcome.
func (m *MockService) AddTest(r MockResult) *MockService {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.test = append(m.test, r)
	return m
}

func (m *MockService) FetchCatalog(_ context.Context) (*catalog.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CatalogErr != nil {
		return nil, m.CatalogErr
	}
	if m.Catalog == nil {
		return &catalog.Catalog{}, nil
	}
	return m.Catalog, nil
}

func (m *MockService) GenerateQuestion(_ context.Context, req GenerateRequest) (*GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = append(m.GenerateCalls, req)
	r, err := pop(&m.generate, OpGenerate)
	if err != nil {
		return nil, err
	}
	return r.Generate, nil
}

func (m *MockService) CheckAnswer(_ context.Context, req CheckRequest) (*CheckResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckCalls = append(m.CheckCalls, req)
	r, err := pop(&m.check, OpCheck)
	if err != nil {
		return nil, err
	}
	return r.Check, nil
}

func (m *MockService) GenerateTest(_ context.Context, req TestRequest) (*TestResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TestCalls = append(m.TestCalls, req)
	r, err := pop(&m.test, OpTest)
	if err != nil {
		return nil, err
	}
	return r.Test, nil
}

// CallCount returns the number of generate, check and test calls made.
func (m *MockService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateCalls) + len(m.CheckCalls) + len(m.TestCalls)
}

func pop(q *[]MockResult, op string) (MockResult, error) {
	if len(*q) == 0 {
		return MockResult{}, &ErrRequestFailed{Op: op, Err: errors.New("no canned response")}
	}
	r := (*q)[0]
	*q = (*q)[1:]
	if r.Err != nil {
		return MockResult{}, r.Err
	}
	return r, nil
}

// QuestionResult is a MockResult for a successful generate.
func QuestionResult(q Question) MockResult {
	return MockResult{Generate: &GenerateResponse{OK: true, Status: 200, Question: &q}}
}

// CheckVerdict is a MockResult for a successful check.
func CheckVerdict(correct bool, score float64, correctAnswer any) MockResult {
	fields := map[string]any{"ok": true, "correct": correct, "score": score}
	if correctAnswer != nil {
		fields["correct_answer"] = correctAnswer
	}
	return MockResult{Check: &CheckResponse{OK: true, Status: 200, Result: NewCheckResult(nil, fields)}}
}
