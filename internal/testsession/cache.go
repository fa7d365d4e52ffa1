// Package testsession holds the questions of one generated test, each with
// its own lifecycle, behind a navigable cursor.
package testsession

import (
	"context"
	"fmt"

	"github.com/abhisek/smartest/internal/lifecycle"
	"github.com/abhisek/smartest/internal/quizapi"
)

// Cache owns one lifecycle.Session per test question position. Sessions are
// created on first access and are never reset by navigation.
type Cache struct {
	questions []quizapi.Question
	keys      []string
	sessions  []*lifecycle.Session
	cursor    int
}

// CheckTicket is a check request bound to the question index it was issued
// for.
type CheckTicket struct {
	Index int
	lifecycle.CheckTicket
}

// Summary aggregates the checked questions of a test.
type Summary struct {
	Total     int
	Checked   int
	Correct   int
	MeanScore float64 // over checked questions that reported a score
	Scored    int
}

// New builds a cache from a stored payload.
func New(p Payload) *Cache {
	c := &Cache{
		questions: p.Test,
		keys:      make([]string, len(p.Test)),
		sessions:  make([]*lifecycle.Session, len(p.Test)),
	}
	// Generated labels must not shadow an identity that appears later.
	seen := make(map[string]bool, len(p.Test))
	for _, q := range p.Test {
		seen[q.ID] = true
	}
	taken := make(map[string]bool, len(p.Test))
	for i, q := range p.Test {
		key := q.ID
		if key == "" || taken[key] {
			for n := i; key == "" || taken[key] || seen[key]; n += len(p.Test) {
				key = fmt.Sprintf("%s#%d", q.ID, n)
			}
		}
		taken[key] = true
		c.keys[i] = key
	}
	return c
}

// Len returns the number of questions.
func (c *Cache) Len() int { return len(c.questions) }

// Cursor returns the current index.
func (c *Cache) Cursor() int { return c.cursor }

// Key returns the label of question i: its identity, suffixed with "#n"
// when missing or repeated. Labels are unique within a test.
func (c *Cache) Key(i int) string {
	if !c.valid(i) {
		return ""
	}
	return c.keys[i]
}

// At returns the session of question i, creating it on first access. It
// returns nil for an out-of-range index.
func (c *Cache) At(i int) *lifecycle.Session {
	if !c.valid(i) {
		return nil
	}
	if c.sessions[i] == nil {
		c.sessions[i] = lifecycle.NewGeneratedSession(c.questions[i])
	}
	return c.sessions[i]
}

// Current returns the session under the cursor, or nil for an empty test.
func (c *Cache) Current() *lifecycle.Session {
	return c.At(c.cursor)
}

// MoveTo sets the cursor. Out-of-range indexes are refused.
func (c *Cache) MoveTo(i int) bool {
	if !c.valid(i) {
		return false
	}
	c.cursor = i
	c.At(i)
	return true
}

// Next advances the cursor if not at the last question.
func (c *Cache) Next() bool { return c.MoveTo(c.cursor + 1) }

// Prev moves the cursor back if not at the first question.
func (c *Cache) Prev() bool { return c.MoveTo(c.cursor - 1) }

// HasNext reports whether Next would move.
func (c *Cache) HasNext() bool { return c.cursor < len(c.questions)-1 }

// HasPrev reports whether Prev would move.
func (c *Cache) HasPrev() bool { return c.cursor > 0 }

// EditAnswer stores the latest answer text of question i. It is called on
// every edit so no keystroke is lost to navigation.
func (c *Cache) EditAnswer(i int, text string) bool {
	s := c.At(i)
	if s == nil {
		return false
	}
	return s.SetAnswer(text)
}

// BeginCheck issues a check of question i's stored answer.
func (c *Cache) BeginCheck(i int) (CheckTicket, bool) {
	s := c.At(i)
	if s == nil {
		return CheckTicket{}, false
	}
	t, ok := s.BeginCheck(s.Answer())
	if !ok {
		return CheckTicket{}, false
	}
	return CheckTicket{Index: i, CheckTicket: t}, true
}

// CompleteCheck applies a check outcome to the question the ticket was
// issued for, wherever the cursor is now.
func (c *Cache) CompleteCheck(t CheckTicket, resp *quizapi.CheckResponse, err error) bool {
	s := c.At(t.Index)
	if s == nil {
		return false
	}
	return s.CompleteCheck(t.CheckTicket, resp, err)
}

// Check runs a synchronous check of question i.
func (c *Cache) Check(ctx context.Context, svc quizapi.Service, i int) bool {
	t, ok := c.BeginCheck(i)
	if !ok {
		return false
	}
	resp, err := lifecycle.CallCheck(ctx, svc, lifecycle.TestSlot(i), t.CheckTicket)
	c.CompleteCheck(t, resp, err)
	return true
}

// Progress returns "Question i / n" for the cursor (1-based).
func (c *Cache) Progress() string {
	if len(c.questions) == 0 {
		return "Question 0 / 0"
	}
	return fmt.Sprintf("Question %d / %d", c.cursor+1, len(c.questions))
}

// Summary aggregates results across visited questions.
func (c *Cache) Summary() Summary {
	sum := Summary{Total: len(c.questions)}
	var total float64
	for _, s := range c.sessions {
		if s == nil || s.State() != lifecycle.StateChecked {
			continue
		}
		sum.Checked++
		r := s.Result()
		if r == nil {
			continue
		}
		if r.Correct != nil && *r.Correct {
			sum.Correct++
		}
		if r.Score != nil {
			total += *r.Score
			sum.Scored++
		}
	}
	if sum.Scored > 0 {
		sum.MeanScore = total / float64(sum.Scored)
	}
	return sum
}

func (c *Cache) valid(i int) bool {
	return i >= 0 && i < len(c.questions)
}
