// Package practice is the single-question screen: pick a subchapter, tune
// its options, generate a question and check answers against the service.
package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/lifecycle"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/rules"
	"github.com/abhisek/smartest/internal/screen"
	"github.com/abhisek/smartest/internal/ui/components"
	"github.com/abhisek/smartest/internal/ui/layout"
)

// pane is the part of the screen receiving keys.
type pane int

const (
	paneCatalog pane = iota
	paneOptions
	paneAnswer
)

// PracticeScreen implements screen.Screen for single-question practice.
type PracticeScreen struct {
	svc quizapi.Service

	catalog   *catalog.Catalog
	catErr    string
	filter    components.TextInput
	filtering bool
	entries   []catalog.Entry
	cursor    int
	selected  *catalog.Selection

	tier     rules.Tier
	form     *options.Form
	fieldIdx int

	session *lifecycle.Session
	input   components.TextInput
	choices components.Choices

	focus           pane
	showExplanation bool
	showRaw         bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.InputCapturer = (*PracticeScreen)(nil)

// New creates a PracticeScreen backed by svc.
func New(svc quizapi.Service) *PracticeScreen {
	filter := components.NewTextInput("filter subchapters...", false, 40)
	filter.Blur()
	input := components.NewTextInput("Type your answer...", false, 0)
	input.Blur()
	return &PracticeScreen{
		svc:     svc,
		filter:  filter,
		tier:    rules.TierMedium,
		session: lifecycle.NewSession(),
		input:   input,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.fetchCatalog()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

// CapturingInput claims esc while the catalog filter is being typed.
func (s *PracticeScreen) CapturingInput() bool {
	return s.filtering
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Focus"}}
	switch s.focus {
	case paneCatalog:
		if s.filtering {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Done filtering"},
				{Key: "Esc", Description: "Clear filter"},
			}
		}
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Select"},
			layout.KeyHint{Key: "/", Description: "Filter"})
	case paneOptions:
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Change"},
			layout.KeyHint{Key: "t", Description: "Difficulty"})
	case paneAnswer:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Check"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Generate"})
	aff := s.session.Affordances()
	if aff.Explanation {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Explain"})
	}
	if aff.RawExchange {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Raw"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.Err != nil {
			s.catErr = msg.Err.Error()
			return s, nil
		}
		s.catErr = ""
		s.catalog = msg.Catalog
		s.refreshEntries()
		return s, nil

	case generateDoneMsg:
		return s.handleGenerateDone(msg)

	case checkDoneMsg:
		if msg.Session.CompleteCheck(msg.Ticket, msg.Resp, msg.Err) && msg.Session == s.session {
			s.syncInput()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == paneAnswer && !s.filtering {
		return s.updateInput(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.filtering {
		switch msg.String() {
		case "enter":
			s.filtering = false
			s.filter.Blur()
			return s, nil
		case "esc":
			s.filtering = false
			s.filter.SetValue("")
			s.filter.Blur()
			s.refreshEntries()
			return s, nil
		}
		var cmd tea.Cmd
		var changed bool
		s.filter, cmd, changed = s.filter.Update(msg)
		if changed {
			s.refreshEntries()
		}
		return s, cmd
	}

	switch msg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % 3)
	case "shift+tab":
		return s, s.setFocus((s.focus + 2) % 3)
	case "ctrl+g":
		return s, s.generate()
	case "ctrl+e":
		if s.session.Affordances().Explanation {
			s.showExplanation = !s.showExplanation
		}
		return s, nil
	case "ctrl+r":
		if s.session.Affordances().RawExchange {
			s.showRaw = !s.showRaw
		}
		return s, nil
	}

	switch s.focus {
	case paneCatalog:
		return s.handleCatalogKey(msg)
	case paneOptions:
		s.handleOptionsKey(msg)
		return s, nil
	default:
		if msg.String() == "enter" {
			return s, s.check()
		}
		return s.updateInput(msg)
	}
}

func (s *PracticeScreen) handleCatalogKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case "/":
		s.filtering = true
		return s, s.filter.Focus()
	case "r":
		if s.catalog == nil {
			return s, s.fetchCatalog()
		}
	case "enter", "space", " ":
		if s.cursor < len(s.entries) {
			s.selectEntry(s.entries[s.cursor].Selection)
		}
	}
	return s, nil
}

func (s *PracticeScreen) handleOptionsKey(msg tea.KeyMsg) {
	if msg.String() == "t" {
		s.tier = s.tier.Next()
		if s.form != nil {
			s.form.SetTier(s.tier)
		}
		return
	}
	if s.form == nil {
		return
	}
	fields := s.form.Fields()
	switch msg.String() {
	case "up", "k":
		if s.fieldIdx > 0 {
			s.fieldIdx--
		}
	case "down", "j":
		if s.fieldIdx < len(fields)-1 {
			s.fieldIdx++
		}
	case "left", "h":
		if s.fieldIdx < len(fields) {
			s.form.Cycle(fields[s.fieldIdx].Def.Name, -1)
		}
	case "right", "l":
		if s.fieldIdx < len(fields) {
			s.form.Cycle(fields[s.fieldIdx].Def.Name, 1)
		}
	}
}

// updateInput forwards msg to the answer input (or choice list) and stores
// every edit on the session. Edits are rejected while input is disabled.
func (s *PracticeScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if !s.session.Affordances().AnswerInput {
		return s, nil
	}
	if !s.choices.Empty() {
		var key string
		var picked bool
		s.choices, key, picked = s.choices.Update(msg)
		if picked {
			s.session.SetAnswer(key)
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
		s.session.SetAnswer(s.input.Value())
	}
	return s, cmd
}

func (s *PracticeScreen) setFocus(p pane) tea.Cmd {
	s.focus = p
	if p == paneAnswer {
		return s.input.Focus()
	}
	s.input.Blur()
	return nil
}

func (s *PracticeScreen) selectEntry(sel catalog.Selection) {
	if s.selected != nil && *s.selected == sel {
		return
	}
	s.selected = &sel
	s.form = options.NewForm(catalog.KindFor(sel), s.tier)
	s.fieldIdx = 0
}

func (s *PracticeScreen) refreshEntries() {
	if s.catalog == nil {
		s.entries = nil
		return
	}
	s.entries = s.catalog.Entries(s.filter.Value())
	if s.cursor >= len(s.entries) {
		s.cursor = max(len(s.entries)-1, 0)
	}
}

// syncInput mirrors the session's answer and question into the widgets.
func (s *PracticeScreen) syncInput() {
	s.input.SetValue(s.session.Answer())
	var labels, keys []string
	if q := s.session.Question(); q != nil {
		for _, o := range q.AnswerOptions() {
			labels = append(labels, o.Label)
			keys = append(keys, o.Key)
		}
	}
	s.choices = components.NewChoices(labels, keys)
}

func (s *PracticeScreen) fetchCatalog() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		cat, err := svc.FetchCatalog(context.Background())
		return catalogLoadedMsg{Catalog: cat, Err: err}
	}
}

// generate starts a fresh question. The previous session is replaced so a
// late response for it is dropped.
func (s *PracticeScreen) generate() tea.Cmd {
	if !s.session.Affordances().Generate {
		return nil
	}
	opts := options.Build("", s.tier, nil)
	if s.form != nil {
		opts = s.form.Record()
	}
	next := lifecycle.NewSession()
	t, ok := next.BeginGenerate(s.selected, opts)
	s.session = next
	s.showExplanation = false
	s.showRaw = false
	s.syncInput()
	if !ok {
		return nil
	}
	svc := s.svc
	return func() tea.Msg {
		resp, err := lifecycle.CallGenerate(context.Background(), svc, lifecycle.SlotPractice, t)
		return generateDoneMsg{Session: next, Ticket: t, Resp: resp, Err: err}
	}
}

func (s *PracticeScreen) handleGenerateDone(msg generateDoneMsg) (screen.Screen, tea.Cmd) {
	if !msg.Session.CompleteGenerate(msg.Ticket, msg.Resp, msg.Err) || msg.Session != s.session {
		return s, nil
	}
	s.syncInput()
	if s.session.Affordances().AnswerInput {
		return s, s.setFocus(paneAnswer)
	}
	return s, nil
}

func (s *PracticeScreen) check() tea.Cmd {
	sess := s.session
	t, ok := sess.BeginCheck(s.input.Value())
	if !ok {
		return nil
	}
	svc := s.svc
	return func() tea.Msg {
		resp, err := lifecycle.CallCheck(context.Background(), svc, lifecycle.SlotPractice, t)
		return checkDoneMsg{Session: sess, Ticket: t, Resp: resp, Err: err}
	}
}
