package quizapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/rules"
)

// Question is one generated question as returned by the service. The
// identity and text are normalised from the field spellings the service
// has used over time; Raw keeps the original object.
type Question struct {
	ID         string
	Text       string
	Chapter    int
	Subchapter int
	Meta       map[string]any
	Raw        json.RawMessage
}

// HasID reports whether the question carries a usable identity.
func (q Question) HasID() bool { return q.ID != "" }

// Type returns meta.type when present.
func (q Question) Type() string {
	s, _ := q.Meta["type"].(string)
	return s
}

type questionWire struct {
	QuestionID   json.RawMessage `json:"question_id"`
	QID          json.RawMessage `json:"qid"`
	ID           json.RawMessage `json:"id"`
	QuestionText *string         `json:"question_text"`
	Text         *string         `json:"text"`
	Prompt       *string         `json:"prompt"`
	Chapter      int             `json:"chapter_number"`
	Subchapter   int             `json:"subchapter_number"`
	Meta         map[string]any  `json:"meta"`
}

// UnmarshalJSON resolves identity as question_id, qid, id, meta.qid,
// meta.question_id (first usable wins) and text as question_text, text,
// prompt.
func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*q = Question{
		Chapter:    w.Chapter,
		Subchapter: w.Subchapter,
		Meta:       w.Meta,
		Raw:        append(json.RawMessage(nil), data...),
	}
	for _, raw := range []json.RawMessage{w.QuestionID, w.QID, w.ID} {
		if id := identity(raw); id != "" {
			q.ID = id
			break
		}
	}
	if q.ID == "" && w.Meta != nil {
		for _, key := range []string{"qid", "question_id"} {
			if b, err := json.Marshal(w.Meta[key]); err == nil {
				if id := identity(b); id != "" {
					q.ID = id
					break
				}
			}
		}
	}
	for _, s := range []*string{w.QuestionText, w.Text, w.Prompt} {
		if s != nil {
			q.Text = *s
			break
		}
	}
	return nil
}

// MarshalJSON returns the original object when known so persisted payloads
// round-trip unchanged.
func (q Question) MarshalJSON() ([]byte, error) {
	if len(q.Raw) > 0 {
		return q.Raw, nil
	}
	out := map[string]any{
		"question_text":     q.Text,
		"chapter_number":    q.Chapter,
		"subchapter_number": q.Subchapter,
	}
	if q.ID != "" {
		out["question_id"] = q.ID
	}
	if q.Meta != nil {
		out["meta"] = q.Meta
	}
	return json.Marshal(out)
}

// identity accepts non-empty strings and numbers.
func identity(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// GenerateRequest asks for one question on a single subchapter.
type GenerateRequest struct {
	Selection catalog.Selection
	Options   options.Record
}

// MarshalJSON encodes the wire body of POST /api/question.
func (r GenerateRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Chapter    int            `json:"chapter_number"`
		Subchapter int            `json:"subchapter_number"`
		Options    options.Record `json:"options"`
	}{r.Selection.Chapter, r.Selection.Subchapter, r.Options})
}

// GenerateResponse is the outcome of a generate call that reached the
// service. OK is false for non-success statuses.
type GenerateResponse struct {
	OK       bool
	Status   int
	Question *Question
	Error    string
	Raw      json.RawMessage
}

// CheckRequest submits an answer for a previously generated question.
type CheckRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// CheckResult is the structured verdict of a successful check. Correct is
// nil when the service could not decide.
type CheckResult struct {
	Correct       *bool
	Score         *float64
	CorrectAnswer any
	Message       string
	Fields        map[string]any
	Keys          []string // top-level keys in body order
	Raw           json.RawMessage
}

// CheckResponse is the outcome of a check call that reached the service.
type CheckResponse struct {
	OK     bool
	Status int
	Result *CheckResult
	Error  string
	Raw    json.RawMessage
}

// TestRequest asks for a batch of questions across subchapters.
type TestRequest struct {
	Count       int                 `json:"num_questions"`
	Difficulty  rules.Tier          `json:"difficulty"`
	Subchapters []catalog.Selection `json:"-"`
}

// MarshalJSON encodes selections in their "ch:sub" form.
func (r TestRequest) MarshalJSON() ([]byte, error) {
	subs := make([]string, len(r.Subchapters))
	for i, s := range r.Subchapters {
		subs[i] = s.String()
	}
	return json.Marshal(struct {
		Count       int        `json:"num_questions"`
		Difficulty  rules.Tier `json:"difficulty"`
		Subchapters []string   `json:"subchapters"`
	}{r.Count, r.Difficulty, subs})
}

// TestResponse is the outcome of a batch generation. On partial failure the
// questions that were produced are in Partial.
type TestResponse struct {
	OK        bool
	Status    int
	Questions []Question
	Error     string
	ErrorCode string
	Partial   []Question
	Raw       json.RawMessage
}

// FormatScore renders a score the way the service reports it.
func FormatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AnswerOption is a suggested answer offered by the question's meta.
type AnswerOption struct {
	Label string
	Key   string
}

// AnswerOptions returns meta.answer_options paired with
// meta.answer_option_keys. Keys default to the labels when the two lists
// differ in length.
func (q Question) AnswerOptions() []AnswerOption {
	labels, _ := q.Meta["answer_options"].([]any)
	if len(labels) == 0 {
		return nil
	}
	keys, _ := q.Meta["answer_option_keys"].([]any)
	if len(keys) != len(labels) {
		keys = labels
	}
	out := make([]AnswerOption, len(labels))
	for i := range labels {
		out[i] = AnswerOption{Label: FormatValue(labels[i]), Key: FormatValue(keys[i])}
	}
	return out
}
