package home

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/router"
	"github.com/abhisek/smartest/internal/screen"
	"github.com/abhisek/smartest/internal/screens/history"
	"github.com/abhisek/smartest/internal/screens/practice"
	"github.com/abhisek/smartest/internal/screens/testrun"
	"github.com/abhisek/smartest/internal/screens/testsetup"
	"github.com/abhisek/smartest/internal/store"
	"github.com/abhisek/smartest/internal/testsession"
	"github.com/abhisek/smartest/internal/ui/components"
)

const (
	itemPractice = iota
	itemTest
	itemResume
	itemLog
	itemExit
)

// Status is the dashboard line of the home screen.
type Status struct {
	Scope     string
	TestSize  int // questions in the stored test, 0 when none
	Requests  int
	Failures  int
	StatusErr string
}

type statusMsg Status

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	svc      quizapi.Service
	sessions store.SessionRepo
	events   store.EventRepo
	scope    string

	menu       components.Menu
	menuLabels []string
	status     Status
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Sessions are scoped by scope; events may be
// nil when request logging is unavailable.
func New(svc quizapi.Service, sessions store.SessionRepo, events store.EventRepo, scope string) *HomeScreen {
	h := &HomeScreen{
		svc:        svc,
		sessions:   sessions,
		events:     events,
		scope:      scope,
		menuLabels: []string{"PRACTICE", "TEST MODE", "RESUME TEST", "REQUEST LOG", "EXIT"},
		status:     Status{Scope: scope},
	}
	h.buildMenu(0)
	return h
}

func (h *HomeScreen) buildMenu(selected int) {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}
	items := []components.MenuItem{
		{Label: h.menuLabels[itemPractice], Shortcut: "p", Hint: "Generate and check single questions", Action: push(func() screen.Screen {
			return practice.New(h.svc)
		})},
		{Label: h.menuLabels[itemTest], Shortcut: "t", Hint: "Generate a batch test across subchapters", Action: push(func() screen.Screen {
			return testsetup.New(h.svc, h.sessions, h.scope)
		})},
		{Label: h.menuLabels[itemResume], Shortcut: "r", Hint: "Continue the stored test of this session", Disabled: h.status.TestSize == 0, Action: push(func() screen.Screen {
			return testrun.New(h.svc, h.sessions, h.scope)
		})},
		{Label: h.menuLabels[itemLog], Shortcut: "l", Hint: "Browse requests sent to the quiz service", Disabled: h.events == nil, Action: push(func() screen.Screen {
			return history.New(h.events)
		})},
		{Label: h.menuLabels[itemExit], Shortcut: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.menu.Select(selected)
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStatus()
}

// loadStatus reads the stored test and request totals for the dashboard.
func (h *HomeScreen) loadStatus() tea.Cmd {
	sessions, events, scope := h.sessions, h.events, h.scope
	return func() tea.Msg {
		ctx := context.Background()
		st := Status{Scope: scope}
		p, err := testsession.Load(ctx, sessions, scope)
		switch {
		case err == nil:
			st.TestSize = len(p.Test)
		case !errors.Is(err, testsession.ErrNoTest):
			st.StatusErr = err.Error()
		}
		if events != nil {
			stats, err := events.RequestStats(ctx)
			if err == nil {
				for _, op := range stats {
					st.Requests += op.Count
					st.Failures += op.Failures
				}
			}
		}
		return statusMsg(st)
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		h.status = Status(msg)
		h.buildMenu(h.menu.Selected)
		return h, nil
	case router.ResumedMsg:
		return h, h.loadStatus()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 80

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.status, cw, compact))
	if h.status.StatusErr != "" {
		sections = append(sections, renderWarning(h.status.StatusErr, cw))
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu, cw))
	}
	if hint := h.menu.HintView(cw); hint != "" {
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
