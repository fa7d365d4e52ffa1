// Package testrun walks through a stored test one question at a time.
// Each question keeps its own answer and check state across navigation.
package testrun

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/lifecycle"
	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/router"
	"github.com/abhisek/smartest/internal/screen"
	"github.com/abhisek/smartest/internal/screens/summary"
	"github.com/abhisek/smartest/internal/store"
	"github.com/abhisek/smartest/internal/testsession"
	"github.com/abhisek/smartest/internal/ui/components"
	"github.com/abhisek/smartest/internal/ui/layout"
	"github.com/abhisek/smartest/internal/ui/theme"
)

type payloadLoadedMsg struct {
	Payload testsession.Payload
	Err     error
}

type checkDoneMsg struct {
	Ticket testsession.CheckTicket
	Resp   *quizapi.CheckResponse
	Err    error
}

// TestRunScreen implements screen.Screen for answering a stored test.
type TestRunScreen struct {
	svc      quizapi.Service
	sessions store.SessionRepo
	scope    string

	cache   *testsession.Cache
	loadErr string

	input           components.TextInput
	choices         components.Choices
	showExplanation bool
	showRaw         bool
}

var _ screen.Screen = (*TestRunScreen)(nil)
var _ screen.KeyHintProvider = (*TestRunScreen)(nil)

// New creates a TestRunScreen that loads the test stored under scope.
func New(svc quizapi.Service, sessions store.SessionRepo, scope string) *TestRunScreen {
	return &TestRunScreen{
		svc:      svc,
		sessions: sessions,
		scope:    scope,
		input:    components.NewTextInput("Type your answer...", false, 0),
	}
}

func (s *TestRunScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.load())
}

// load reads the stored test once; the screen never re-reads it.
func (s *TestRunScreen) load() tea.Cmd {
	repo, scope := s.sessions, s.scope
	return func() tea.Msg {
		p, err := testsession.Load(context.Background(), repo, scope)
		return payloadLoadedMsg{Payload: p, Err: err}
	}
}

func (s *TestRunScreen) Title() string {
	return "Test"
}

func (s *TestRunScreen) KeyHints() []layout.KeyHint {
	if s.cache == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	var hints []layout.KeyHint
	if s.cache.HasPrev() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Prev"})
	}
	if s.cache.HasNext() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+N", Description: "Next"})
	}
	hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Check"})
	if cur := s.cache.Current(); cur != nil && cur.Affordances().Explanation {
		hints = append(hints,
			layout.KeyHint{Key: "Ctrl+E", Description: "Explain"},
			layout.KeyHint{Key: "Ctrl+R", Description: "Raw"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Summary"},
		layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *TestRunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case payloadLoadedMsg:
		if msg.Err != nil {
			s.loadErr = msg.Err.Error()
			return s, nil
		}
		s.cache = testsession.New(msg.Payload)
		s.sync()
		return s, nil

	case checkDoneMsg:
		if s.cache != nil && s.cache.CompleteCheck(msg.Ticket, msg.Resp, msg.Err) && msg.Ticket.Index == s.cache.Cursor() {
			s.sync()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.cache != nil {
		return s.updateInput(msg)
	}
	return s, nil
}

func (s *TestRunScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.cache == nil || s.cache.Len() == 0 {
		return s, nil
	}
	switch msg.String() {
	case "ctrl+n":
		if s.cache.Next() {
			s.sync()
		}
		return s, nil
	case "ctrl+p":
		if s.cache.Prev() {
			s.sync()
		}
		return s, nil
	case "enter":
		return s, s.check()
	case "ctrl+e":
		if s.cache.Current().Affordances().Explanation {
			s.showExplanation = !s.showExplanation
		}
		return s, nil
	case "ctrl+r":
		if s.cache.Current().Affordances().RawExchange {
			s.showRaw = !s.showRaw
		}
		return s, nil
	case "ctrl+s":
		sum := summary.New(s.cache.Summary(), s.summaryLines())
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: sum} }
	}
	return s.updateInput(msg)
}

// updateInput forwards msg to the answer widgets and stores every edit on
// the current question.
func (s *TestRunScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	i := s.cache.Cursor()
	cur := s.cache.At(i)
	if cur == nil || !cur.Affordances().AnswerInput {
		return s, nil
	}
	if !s.choices.Empty() {
		var key string
		var picked bool
		s.choices, key, picked = s.choices.Update(msg)
		if picked {
			s.cache.EditAnswer(i, key)
			s.input.SetValue(key)
			return s, nil
		}
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "up" || k.String() == "down") {
			return s, nil
		}
	}
	var cmd tea.Cmd
	var changed bool
	s.input, cmd, changed = s.input.Update(msg)
	if changed {
		s.cache.EditAnswer(i, s.input.Value())
	}
	return s, cmd
}

func (s *TestRunScreen) check() tea.Cmd {
	t, ok := s.cache.BeginCheck(s.cache.Cursor())
	if !ok {
		return nil
	}
	svc := s.svc
	return func() tea.Msg {
		resp, err := lifecycle.CallCheck(context.Background(), svc, lifecycle.TestSlot(t.Index), t.CheckTicket)
		return checkDoneMsg{Ticket: t, Resp: resp, Err: err}
	}
}

// sync loads the current question's answer and options into the widgets.
func (s *TestRunScreen) sync() {
	s.showExplanation = false
	s.showRaw = false
	cur := s.cache.Current()
	if cur == nil {
		s.input.SetValue("")
		s.choices = components.Choices{}
		return
	}
	s.input.SetValue(cur.Answer())
	var labels, keys []string
	if q := cur.Question(); q != nil {
		for _, o := range q.AnswerOptions() {
			labels = append(labels, o.Label)
			keys = append(keys, o.Key)
		}
	}
	s.choices = components.NewChoices(labels, keys)
}

func (s *TestRunScreen) summaryLines() []summary.Line {
	lines := make([]summary.Line, s.cache.Len())
	for i := range lines {
		sess := s.cache.At(i)
		lines[i] = summary.Line{Label: fmt.Sprintf("Question %d", i+1)}
		if sess.State() == lifecycle.StateChecked {
			lines[i].Checked = true
			lines[i].Verdict = sess.ResultLine()
			if r := sess.Result(); r != nil {
				lines[i].Correct = r.Correct
			}
		}
	}
	return lines
}

func (s *TestRunScreen) View(width, height int) string {
	if s.loadErr != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(s.loadErr))
	}
	if s.cache == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading test..."))
	}
	if s.cache.Len() == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("This test has no questions."))
	}

	cur := s.cache.Current()
	q := cur.Question()
	textWidth := max(width-8, 10)
	var b strings.Builder

	progress := s.cache.Progress()
	sum := s.cache.Summary()
	b.WriteString(theme.Title.Render(progress))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("    %d checked, %d correct", sum.Checked, sum.Correct)))
	b.WriteString("\n")
	b.WriteString(components.NewTally("", sum.Checked, sum.Total, min(textWidth, 40)).View())
	b.WriteString("\n")
	if q != nil && q.Type() != "" {
		b.WriteString(theme.Subtitle.Render(q.Type()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if q != nil {
		b.WriteString(theme.Body.Width(textWidth).Render(q.Text))
	}
	b.WriteString("\n\n")

	if !s.choices.Empty() {
		b.WriteString(s.choices.View(cur.Answer()))
		b.WriteString("\n")
	}
	b.WriteString("Answer: ")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	b.WriteString(components.ButtonRow(
		components.NewButton("Prev", "Ctrl+P", s.cache.HasPrev()),
		components.NewButton("Check", "Enter", cur.Affordances().Check),
		components.NewButton("Next", "Ctrl+N", s.cache.HasNext()),
	))
	b.WriteString("\n\n")

	if cur.InFlight() == lifecycle.OpCheck {
		b.WriteString(theme.Hint.Render("Checking..."))
	} else if line := cur.ResultLine(); line != "" {
		b.WriteString(resultStyle(cur).Width(textWidth).Render(line))
	}

	if s.showExplanation {
		if exp, ok := cur.Explanation(); ok {
			b.WriteString("\n\n")
			b.WriteString(theme.Subtitle.Render("Explanation"))
			b.WriteString("\n")
			b.WriteString(theme.Body.Width(textWidth).Render(exp))
		}
	}
	if s.showRaw {
		if raw, ok := cur.RawExchange(); ok {
			b.WriteString("\n\n")
			b.WriteString(theme.Subtitle.Render("Raw response"))
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(raw))
		}
	}

	return components.Panel(progress, b.String(), width, true)
}

func resultStyle(sess *lifecycle.Session) lipgloss.Style {
	switch sess.State() {
	case lifecycle.StateError:
		return theme.ErrorText
	case lifecycle.StateChecked:
		if r := sess.Result(); r != nil && r.Correct != nil {
			if *r.Correct {
				return theme.Correct
			}
			return theme.Incorrect
		}
		return theme.Body
	default:
		return theme.Notice
	}
}
