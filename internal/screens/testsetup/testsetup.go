// Package testsetup collects the parameters of a batch test, requests it
// and hands the stored payload over to the test run screen.
package testsetup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/router"
	"github.com/abhisek/smartest/internal/rules"
	"github.com/abhisek/smartest/internal/screen"
	"github.com/abhisek/smartest/internal/screens/testrun"
	"github.com/abhisek/smartest/internal/store"
	"github.com/abhisek/smartest/internal/testsession"
	"github.com/abhisek/smartest/internal/ui/components"
	"github.com/abhisek/smartest/internal/ui/layout"
	"github.com/abhisek/smartest/internal/ui/theme"
)

const defaultCount = 5

type row int

const (
	rowQuestions row = iota
	rowDifficulty
	rowSubchapters
	numRows
)

type catalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

type testReadyMsg struct {
	Resp *quizapi.TestResponse
	Err  error
}

type payloadSavedMsg struct {
	Err error
}

// TestSetupScreen implements screen.Screen for configuring a test.
type TestSetupScreen struct {
	svc      quizapi.Service
	sessions store.SessionRepo
	scope    string

	catalog *catalog.Catalog
	entries []catalog.Entry
	count   components.TextInput
	tier    rules.Tier
	subs    components.CheckList
	focus   row

	generating bool
	errMsg     string
	partial    []quizapi.Question
}

var _ screen.Screen = (*TestSetupScreen)(nil)
var _ screen.KeyHintProvider = (*TestSetupScreen)(nil)

// New creates a TestSetupScreen. Generated tests are stored in sessions
// under scope.
func New(svc quizapi.Service, sessions store.SessionRepo, scope string) *TestSetupScreen {
	count := components.NewTextInput("count", true, 3)
	count.SetValue(strconv.Itoa(defaultCount))
	return &TestSetupScreen{
		svc:      svc,
		sessions: sessions,
		scope:    scope,
		count:    count,
		tier:     rules.TierMedium,
	}
}

func (s *TestSetupScreen) Init() tea.Cmd {
	return tea.Batch(s.count.Init(), s.fetchCatalog())
}

func (s *TestSetupScreen) fetchCatalog() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		cat, err := svc.FetchCatalog(context.Background())
		return catalogLoadedMsg{Catalog: cat, Err: err}
	}
}

func (s *TestSetupScreen) Title() string {
	return "Test Mode"
}

func (s *TestSetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch s.focus {
	case rowDifficulty:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	case rowSubchapters:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Generate"})
	if len(s.partial) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Use partial"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *TestSetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.catalog = msg.Catalog
		s.entries = msg.Catalog.Entries("")
		labels := make([]string, len(s.entries))
		for i, e := range s.entries {
			labels[i] = e.Chapter + " · " + e.Text
		}
		s.subs = components.NewCheckList(labels)
		return s, nil

	case testReadyMsg:
		return s.handleTestReady(msg)

	case payloadSavedMsg:
		s.generating = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		run := testrun.New(s.svc, s.sessions, s.scope)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: run} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == rowQuestions {
		var cmd tea.Cmd
		s.count, cmd, _ = s.count.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TestSetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.generating {
		return s, nil
	}
	switch msg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % numRows)
	case "shift+tab":
		return s, s.setFocus((s.focus + numRows - 1) % numRows)
	case "ctrl+g":
		return s, s.generate()
	case "ctrl+p":
		if len(s.partial) > 0 {
			return s, s.save(testsession.Payload{OK: true, Test: s.partial})
		}
		return s, nil
	}

	switch s.focus {
	case rowQuestions:
		var cmd tea.Cmd
		s.count, cmd, _ = s.count.Update(msg)
		return s, cmd
	case rowDifficulty:
		switch msg.String() {
		case "right", "l", "space", " ":
			s.tier = s.tier.Next()
		case "left", "h":
			s.tier = s.tier.Next().Next()
		}
	case rowSubchapters:
		s.subs = s.subs.Update(msg)
	}
	return s, nil
}

func (s *TestSetupScreen) setFocus(r row) tea.Cmd {
	s.focus = r
	if r == rowQuestions {
		return s.count.Focus()
	}
	s.count.Blur()
	return nil
}

// Request builds the test request from the current form. Count parsing
// errors leave Count at zero so the service reports the bad input.
func (s *TestSetupScreen) Request() quizapi.TestRequest {
	n, _ := s.count.NumericValue()
	req := quizapi.TestRequest{Count: n, Difficulty: s.tier}
	for _, i := range s.subs.Selected() {
		req.Subchapters = append(req.Subchapters, s.entries[i].Selection)
	}
	return req
}

func (s *TestSetupScreen) generate() tea.Cmd {
	req := s.Request()
	if len(req.Subchapters) == 0 {
		s.errMsg = "Select at least one subchapter."
		return nil
	}
	s.generating = true
	s.errMsg = ""
	s.partial = nil
	svc := s.svc
	return func() tea.Msg {
		ctx := quizapi.WithSlot(context.Background(), "test")
		resp, err := svc.GenerateTest(ctx, req)
		return testReadyMsg{Resp: resp, Err: err}
	}
}

func (s *TestSetupScreen) handleTestReady(msg testReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.generating = false
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	payload, err := testsession.PayloadFrom(msg.Resp)
	if err != nil {
		s.generating = false
		s.errMsg = err.Error()
		s.partial = msg.Resp.Partial
		return s, nil
	}
	return s, s.save(payload)
}

func (s *TestSetupScreen) save(p testsession.Payload) tea.Cmd {
	s.generating = true
	repo, scope := s.sessions, s.scope
	return func() tea.Msg {
		return payloadSavedMsg{Err: testsession.Save(context.Background(), repo, scope, p)}
	}
}

func (s *TestSetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.label(rowQuestions, "Questions"))
	b.WriteString(s.count.View())
	b.WriteString("\n")

	b.WriteString(s.label(rowDifficulty, "Difficulty"))
	tiers := make([]string, 0, 3)
	for _, t := range rules.AllTiers() {
		name := string(t)
		if t == s.tier {
			tiers = append(tiers, theme.Selected.Render("["+name+"]"))
		} else {
			tiers = append(tiers, theme.Disabled.Render(" "+name+" "))
		}
	}
	b.WriteString(strings.Join(tiers, " "))
	b.WriteString("\n\n")

	b.WriteString(s.label(rowSubchapters, "Subchapters"))
	b.WriteString(fmt.Sprintf("%d selected\n", len(s.subs.Selected())))
	switch {
	case s.catalog == nil && s.errMsg == "":
		b.WriteString(theme.Hint.Render("Loading catalog..."))
	default:
		b.WriteString(s.subs.View(max(height-14, 3)))
	}
	b.WriteString("\n")

	switch {
	case s.generating:
		b.WriteString(theme.Hint.Render("Generating test..."))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Width(cw).Render(s.errMsg))
		if len(s.partial) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Notice.Render(fmt.Sprintf("%d questions were generated. Ctrl+P starts with them.", len(s.partial))))
		}
	}

	content := components.Panel("New test", b.String(), cw+4, true)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *TestSetupScreen) label(r row, text string) string {
	l := fmt.Sprintf("%-12s ", text)
	if s.focus == r {
		return theme.Selected.Render("▸ " + l)
	}
	return theme.Subtitle.Render("  " + l)
}
