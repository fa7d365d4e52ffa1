package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartest/internal/router"
	"github.com/abhisek/smartest/internal/testsession"
)

func testSummary() (testsession.Summary, []Line) {
	yes, no := true, false
	return testsession.Summary{Total: 3, Checked: 2, Correct: 1, MeanScore: 75, Scored: 2},
		[]Line{
			{Label: "Question 1", Verdict: "Correct", Correct: &yes, Checked: true},
			{Label: "Question 2", Verdict: "Incorrect (score: 50%)", Correct: &no, Checked: true},
			{Label: "Question 3"},
		}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Test Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Test Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"2 of 3 questions checked", "Mean score: 75%", "2/3", "1/2", "not checked", "Incorrect (score: 50%)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptyTest(t *testing.T) {
	s := New(testsession.Summary{}, nil)
	view := s.View(80, 24)
	if !strings.Contains(view, "0 of 0") {
		t.Errorf("unexpected view:\n%s", view)
	}
	if strings.Contains(view, "Mean score") {
		t.Error("mean score should be hidden without scored questions")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Enter should pop back to the test")
	}
}

func TestSummaryScreen_Navigation_Home(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command on h")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("h should return home")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
