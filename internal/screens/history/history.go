// Package history shows the request log: recent calls to the quiz service
// and per-operation totals.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/screen"
	"github.com/abhisek/smartest/internal/store"
	"github.com/abhisek/smartest/internal/ui/components"
	"github.com/abhisek/smartest/internal/ui/layout"
	"github.com/abhisek/smartest/internal/ui/theme"
)

const pageSize = 100

type historyLoadedMsg struct {
	Events []store.RequestEvent
	Stats  []store.OperationStats
	Err    error
}

// HistoryScreen displays recent request events.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.RequestEvent
	stats     []store.OperationStats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		events, err := repo.RecentRequests(ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.RequestStats(ctx)
		if err != nil {
			return historyLoadedMsg{Events: events}
		}
		return historyLoadedMsg{Events: events, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "Request Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.events = msg.Events
			s.stats = msg.Stats
			s.selected = min(s.selected, max(len(s.events)-1, 0))
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "r":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading request log...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No requests yet. Generate a question first!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderStats(s.stats)))
	b.WriteString("\n\n")

	rows := max(height-len(s.stats)-6, 3)
	start, end := components.Window(s.selected, len(s.events), rows)
	for i := start; i < end; i++ {
		ev := s.events[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		status := "ok"
		if !ev.Success {
			status = "failed"
		}
		line := fmt.Sprintf("%s#%-5d %s  %-9s %-8s %3d  %5dms  %s",
			prefix, ev.Sequence, ev.Timestamp.Local().Format("15:04:05"),
			ev.Operation, ev.Slot, ev.Status, ev.LatencyMs, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !ev.Success:
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := "    request " + ev.RequestID
			if ev.ErrorMessage != "" {
				detail += "\n    " + ev.ErrorMessage
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderStats(stats []store.OperationStats) string {
	if len(stats) == 0 {
		return ""
	}
	lines := make([]string, len(stats))
	for i, st := range stats {
		lines[i] = fmt.Sprintf("%-9s %4d calls  %3d failed  avg %.0fms",
			st.Operation, st.Count, st.Failures, st.AvgLatencyMs)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
