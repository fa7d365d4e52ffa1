// Package lifecycle tracks one question from generation to a checked
// answer. A Session gates which actions are legal and which views are
// unlocked; requests run in two phases (Begin/Complete) so that a response
// is always applied to the slot that issued it.
package lifecycle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/quizapi"
)

// Session is the lifecycle of one question slot. It is not safe for
// concurrent use; a single owner drives it.
type Session struct {
	state    State
	question *quizapi.Question
	answer   string
	result   *quizapi.CheckResult
	errMsg   string
	notice   string
	failedOp Op

	inflight  Op
	requestID string

	raw json.RawMessage
}

// GenerateTicket identifies one issued generate request.
type GenerateTicket struct {
	RequestID string
	Request   quizapi.GenerateRequest
}

// CheckTicket identifies one issued check request.
type CheckTicket struct {
	RequestID string
	Request   quizapi.CheckRequest
}

// NewSession returns an Idle session.
func NewSession() *Session {
	return &Session{}
}

// NewGeneratedSession returns a session for an already generated question,
// as in a batch test. A question without identity starts in Error.
func NewGeneratedSession(q quizapi.Question) *Session {
	s := &Session{}
	s.applyQuestion(&q, q.Raw)
	return s
}

func (s *Session) State() State { return s.state }

// Question returns the current question, or nil.
func (s *Session) Question() *quizapi.Question { return s.question }

// Answer returns the current answer text.
func (s *Session) Answer() string { return s.answer }

// Result returns the check result; nil until Checked.
func (s *Session) Result() *quizapi.CheckResult { return s.result }

// Err returns the failure message of the Error state.
func (s *Session) Err() string { return s.errMsg }

// Notice returns the last non-error notice, such as an empty-answer hint.
func (s *Session) Notice() string { return s.notice }

// InFlight returns the operation awaiting a response, or OpNone.
func (s *Session) InFlight() Op { return s.inflight }

// BeginGenerate starts a generation for sel with opts. Without a selection
// no request is issued and a notice is set. Otherwise the slot restarts:
// the previous question, answer and result are discarded.
func (s *Session) BeginGenerate(sel *catalog.Selection, opts options.Record) (GenerateTicket, bool) {
	if s.inflight != OpNone {
		return GenerateTicket{}, false
	}
	if sel == nil {
		s.notice = MsgMissingSelection
		return GenerateTicket{}, false
	}

	*s = Session{
		state:     StateIdle,
		inflight:  OpGenerate,
		requestID: uuid.NewString(),
	}
	return GenerateTicket{
		RequestID: s.requestID,
		Request:   quizapi.GenerateRequest{Selection: *sel, Options: opts},
	}, true
}

// CompleteGenerate applies the outcome of t. Outcomes for a ticket that is
// not the one in flight are dropped and false is returned.
func (s *Session) CompleteGenerate(t GenerateTicket, resp *quizapi.GenerateResponse, err error) bool {
	if s.inflight != OpGenerate || t.RequestID != s.requestID {
		return false
	}
	s.inflight = OpNone

	switch {
	case err != nil:
		s.fail(OpGenerate, "Request failed: "+err.Error())
	case resp == nil:
		s.fail(OpGenerate, "Request failed: empty response")
	case !resp.OK:
		s.raw = resp.Raw
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("Request failed (%d)", resp.Status)
		}
		s.fail(OpGenerate, msg)
	default:
		s.applyQuestion(resp.Question, resp.Raw)
	}
	return true
}

// BeginCheck submits answer. It is legal from Generated, or from Error when
// the previous check failed. From Checked it is a no-op. An empty answer
// sets a notice and issues nothing.
func (s *Session) BeginCheck(answer string) (CheckTicket, bool) {
	if s.inflight != OpNone || !s.checkable() {
		return CheckTicket{}, false
	}
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		s.notice = MsgEmptyAnswer
		return CheckTicket{}, false
	}

	s.answer = answer
	s.notice = ""
	s.inflight = OpCheck
	s.requestID = uuid.NewString()
	return CheckTicket{
		RequestID: s.requestID,
		Request:   quizapi.CheckRequest{QuestionID: s.question.ID, Answer: trimmed},
	}, true
}

// CompleteCheck applies the outcome of t. A failure keeps the question and
// answer so the check can be retried.
func (s *Session) CompleteCheck(t CheckTicket, resp *quizapi.CheckResponse, err error) bool {
	if s.inflight != OpCheck || t.RequestID != s.requestID {
		return false
	}
	s.inflight = OpNone

	switch {
	case err != nil:
		s.fail(OpCheck, "Check failed: "+err.Error())
	case resp == nil:
		s.fail(OpCheck, "Check failed: empty response")
	case !resp.OK:
		s.raw = resp.Raw
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("Check failed (%d)", resp.Status)
		}
		s.fail(OpCheck, msg)
	case resp.Result == nil:
		s.fail(OpCheck, "Check failed: empty result")
	default:
		s.state = StateChecked
		s.result = resp.Result
		s.errMsg = ""
		s.failedOp = OpNone
		s.raw = resp.Raw
		if len(s.raw) == 0 {
			s.raw = resp.Result.Raw
		}
	}
	return true
}

// SetAnswer replaces the answer text while answer input is enabled.
func (s *Session) SetAnswer(text string) bool {
	if !s.Affordances().AnswerInput {
		return false
	}
	s.answer = text
	return true
}

// Affordances derives enabled actions and views from the current state.
func (s *Session) Affordances() Affordances {
	busy := s.inflight != OpNone
	canAnswer := s.checkable() && !busy
	return Affordances{
		AnswerInput: canAnswer,
		Check:       canAnswer,
		Generate:    !busy,
		Explanation: s.state == StateChecked,
		RawExchange: s.state == StateChecked,
	}
}

// Explanation formats the stored check result. Only available once Checked.
func (s *Session) Explanation() (string, bool) {
	if s.state != StateChecked || s.result == nil {
		return "", false
	}
	return s.result.Explanation(), true
}

// RawExchange returns the indented body of the check response. Only
// available once Checked.
func (s *Session) RawExchange() (string, bool) {
	if s.state != StateChecked {
		return "", false
	}
	return quizapi.IndentJSON(s.raw), true
}

// ResultLine returns the line shown under the answer: the verdict once
// Checked, the failure in Error, otherwise the current notice.
func (s *Session) ResultLine() string {
	switch s.state {
	case StateChecked:
		return s.result.Verdict()
	case StateError:
		return s.errMsg
	default:
		return s.notice
	}
}

func (s *Session) checkable() bool {
	switch s.state {
	case StateGenerated:
		return true
	case StateError:
		return s.failedOp == OpCheck && s.question != nil && s.question.HasID()
	default:
		return false
	}
}

func (s *Session) applyQuestion(q *quizapi.Question, raw json.RawMessage) {
	s.raw = raw
	s.question = q
	if q == nil || !q.HasID() {
		s.fail(OpGenerate, MsgMissingIdentity)
		return
	}
	s.state = StateGenerated
	s.errMsg = ""
	s.failedOp = OpNone
}

func (s *Session) fail(op Op, msg string) {
	s.state = StateError
	s.errMsg = msg
	s.failedOp = op
}
