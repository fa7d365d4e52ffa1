package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartest/internal/store"
)

type mockEventRepo struct {
	events []store.RequestEvent
	stats  []store.OperationStats
	err    error
}

func (m *mockEventRepo) AppendRequest(_ context.Context, _ store.RequestEventData) error {
	return nil
}

func (m *mockEventRepo) RecentRequests(_ context.Context, _ store.QueryOpts) ([]store.RequestEvent, error) {
	return m.events, m.err
}

func (m *mockEventRepo) RequestStats(_ context.Context) ([]store.OperationStats, error) {
	return m.stats, nil
}

func testRepo() *mockEventRepo {
	now := time.Now()
	return &mockEventRepo{
		events: []store.RequestEvent{
			{Sequence: 2, Timestamp: now, RequestEventData: store.RequestEventData{
				Operation: "check", RequestID: "r-2", Slot: "test:1", Status: 502, LatencyMs: 40, ErrorMessage: "bad gateway",
			}},
			{Sequence: 1, Timestamp: now, RequestEventData: store.RequestEventData{
				Operation: "generate", RequestID: "r-1", Slot: "practice", Status: 200, LatencyMs: 12, Success: true,
			}},
		},
		stats: []store.OperationStats{
			{Operation: "check", Count: 1, Failures: 1, AvgLatencyMs: 40},
			{Operation: "generate", Count: 1, AvgLatencyMs: 12},
		},
	}
}

func loaded(t *testing.T, repo store.EventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistory_ListsEvents(t *testing.T) {
	s := loaded(t, testRepo())
	view := s.View(120, 30)
	for _, want := range []string{"#2", "check", "test:1", "failed", "generate", "1 calls"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistory_ExpandShowsDetails(t *testing.T) {
	s := loaded(t, testRepo())
	if strings.Contains(s.View(120, 30), "bad gateway") {
		t.Fatal("details should be collapsed")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(120, 30)
	if !strings.Contains(view, "bad gateway") || !strings.Contains(view, "r-2") {
		t.Errorf("expanded view:\n%s", view)
	}
}

func TestHistory_Navigation(t *testing.T) {
	s := loaded(t, testRepo())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}

func TestHistory_Empty(t *testing.T) {
	s := loaded(t, &mockEventRepo{})
	if !strings.Contains(s.View(80, 24), "No requests yet") {
		t.Error("expected empty state")
	}
}

func TestHistory_Error(t *testing.T) {
	s := loaded(t, &mockEventRepo{err: errors.New("disk gone")})
	if !strings.Contains(s.View(80, 24), "disk gone") {
		t.Error("expected error state")
	}
}
