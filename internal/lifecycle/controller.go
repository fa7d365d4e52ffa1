package lifecycle

import (
	"context"
	"strconv"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/quizapi"
)

// SlotPractice labels the single-question practice slot in request events.
const SlotPractice = "practice"

// TestSlot labels question i of a batch test in request events.
func TestSlot(i int) string {
	return "test:" + strconv.Itoa(i)
}

// CallGenerate performs the request of t, tagging the context with the
// ticket's request id and slot for event logging.
func CallGenerate(ctx context.Context, svc quizapi.Service, slot string, t GenerateTicket) (*quizapi.GenerateResponse, error) {
	ctx = quizapi.WithSlot(quizapi.WithRequestID(ctx, t.RequestID), slot)
	return svc.GenerateQuestion(ctx, t.Request)
}

// CallCheck performs the request of t, tagging the context like CallGenerate.
func CallCheck(ctx context.Context, svc quizapi.Service, slot string, t CheckTicket) (*quizapi.CheckResponse, error) {
	ctx = quizapi.WithSlot(quizapi.WithRequestID(ctx, t.RequestID), slot)
	return svc.CheckAnswer(ctx, t.Request)
}

// Controller drives a Session synchronously against a Service. Failures are
// recorded on the session, never returned.
type Controller struct {
	Service quizapi.Service
	Slot    string
}

// Generate runs a full generate transition. It reports whether a request
// was issued.
func (c Controller) Generate(ctx context.Context, s *Session, sel *catalog.Selection, opts options.Record) bool {
	t, ok := s.BeginGenerate(sel, opts)
	if !ok {
		return false
	}
	resp, err := CallGenerate(ctx, c.Service, c.slot(), t)
	s.CompleteGenerate(t, resp, err)
	return true
}

// Check runs a full check transition. It reports whether a request was
// issued.
func (c Controller) Check(ctx context.Context, s *Session, answer string) bool {
	t, ok := s.BeginCheck(answer)
	if !ok {
		return false
	}
	resp, err := CallCheck(ctx, c.Service, c.slot(), t)
	s.CompleteCheck(t, resp, err)
	return true
}

func (c Controller) slot() string {
	if c.Slot == "" {
		return SlotPractice
	}
	return c.Slot
}
