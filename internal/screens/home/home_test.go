package home

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/router"
	"github.com/abhisek/smartest/internal/screens/practice"
	"github.com/abhisek/smartest/internal/screens/testrun"
	"github.com/abhisek/smartest/internal/store"
	"github.com/abhisek/smartest/internal/testsession"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "t.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func loadedHome(t *testing.T, st *store.Store) *HomeScreen {
	t.Helper()
	h := New(quizapi.NewMockService(), st.SessionRepo(), st.EventRepo(), "s1")
	h.Update(h.Init()())
	return h
}

func TestResumeDisabledWithoutTest(t *testing.T) {
	h := loadedHome(t, openStore(t))
	if !h.menu.Items[itemResume].Disabled {
		t.Error("resume should be disabled without a stored test")
	}
	for i := 0; i < 5; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		if h.menu.Selected == itemResume {
			t.Fatal("navigation must skip the disabled resume item")
		}
	}
}

func TestResumeEnabledWithStoredTest(t *testing.T) {
	st := openStore(t)
	p := testsession.Payload{OK: true, Test: []quizapi.Question{{ID: "a"}, {ID: "b"}}}
	if err := testsession.Save(context.Background(), st.SessionRepo(), "s1", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	h := loadedHome(t, st)

	if h.menu.Items[itemResume].Disabled {
		t.Fatal("resume should be enabled")
	}
	if !strings.Contains(h.View(120, 40), "TEST 2Q") {
		t.Error("dashboard should show the stored test size")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*testrun.TestRunScreen); !ok {
		t.Errorf("expected test run screen, got %T", push.Screen)
	}
}

func TestResumedReloadsStatus(t *testing.T) {
	st := openStore(t)
	h := loadedHome(t, st)

	p := testsession.Payload{OK: true, Test: []quizapi.Question{{ID: "a"}}}
	if err := testsession.Save(context.Background(), st.SessionRepo(), "s1", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, cmd := h.Update(router.ResumedMsg{})
	if cmd == nil {
		t.Fatal("resume should reload the status")
	}
	h.Update(cmd())
	if h.status.TestSize != 1 || h.menu.Items[itemResume].Disabled {
		t.Errorf("status = %+v", h.status)
	}
}

func TestPracticeOpens(t *testing.T) {
	h := loadedHome(t, openStore(t))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*practice.PracticeScreen); !ok {
		t.Errorf("expected practice screen, got %T", push.Screen)
	}
}

func TestRequestCountShown(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	st.EventRepo().AppendRequest(ctx, store.RequestEventData{Operation: "check", Status: 200, Success: true})
	st.EventRepo().AppendRequest(ctx, store.RequestEventData{Operation: "check", Status: 500})
	h := loadedHome(t, st)

	view := h.View(120, 40)
	if !strings.Contains(view, "2 REQ") || !strings.Contains(view, "1 failed") {
		t.Errorf("view:\n%s", view)
	}
}

func TestShortcutsAndHint(t *testing.T) {
	h := loadedHome(t, openStore(t))

	if !strings.Contains(h.View(120, 40), "Generate and check single questions") {
		t.Error("selected item hint should be shown")
	}

	_, cmd := h.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd != nil {
		t.Error("resume shortcut must do nothing without a stored test")
	}

	_, cmd = h.Update(tea.KeyPressMsg{Code: 'l', Text: "l"})
	if cmd == nil {
		t.Fatal("l should open the request log")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Request Log" {
		t.Errorf("expected request log push, got %T", cmd())
	}
	if h.menu.Selected != itemLog {
		t.Errorf("Selected = %d, want %d", h.menu.Selected, itemLog)
	}
}
