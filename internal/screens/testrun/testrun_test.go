package testrun

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartest/internal/lifecycle"
	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/router"
	"github.com/abhisek/smartest/internal/store"
	"github.com/abhisek/smartest/internal/testsession"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func openRepo(t *testing.T) store.SessionRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "t.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.SessionRepo()
}

func testPayload() testsession.Payload {
	return testsession.Payload{OK: true, Test: []quizapi.Question{
		{ID: "a", Text: "First question"},
		{ID: "b", Text: "Second question"},
		{ID: "c", Text: "Third question"},
	}}
}

func loadedScreen(t *testing.T, svc quizapi.Service) *TestRunScreen {
	t.Helper()
	repo := openRepo(t)
	if err := testsession.Save(context.Background(), repo, "s1", testPayload()); err != nil {
		t.Fatalf("save: %v", err)
	}
	s := New(svc, repo, "s1")
	s.Update(s.load()())
	if s.cache == nil {
		t.Fatalf("test not loaded: %s", s.loadErr)
	}
	return s
}

func typeText(s *TestRunScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestLoadShowsFirstQuestion(t *testing.T) {
	s := loadedScreen(t, quizapi.NewMockService())
	view := s.View(100, 30)
	if !strings.Contains(view, "Question 1 / 3") || !strings.Contains(view, "First question") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestNoStoredTest(t *testing.T) {
	s := New(quizapi.NewMockService(), openRepo(t), "empty")
	s.Update(s.load()())
	if s.loadErr != testsession.ErrNoTest.Error() {
		t.Errorf("loadErr = %q", s.loadErr)
	}
	if !strings.Contains(s.View(100, 30), "generate a test first") {
		t.Error("view should explain that no test is stored")
	}
}

func TestAnswersSurviveNavigation(t *testing.T) {
	s := loadedScreen(t, quizapi.NewMockService())

	typeText(s, "one")
	s.Update(ctrlKey('n'))
	if s.input.Value() != "" {
		t.Errorf("second question should start empty, got %q", s.input.Value())
	}
	typeText(s, "two")
	s.Update(ctrlKey('p'))

	if s.input.Value() != "one" {
		t.Errorf("input = %q, want one", s.input.Value())
	}
	if got := s.cache.At(1).Answer(); got != "two" {
		t.Errorf("question 2 answer = %q, want two", got)
	}
}

func TestNavigationStopsAtEnds(t *testing.T) {
	s := loadedScreen(t, quizapi.NewMockService())

	s.Update(ctrlKey('p'))
	if s.cache.Cursor() != 0 {
		t.Error("prev at the first question must not move")
	}
	for i := 0; i < 5; i++ {
		s.Update(ctrlKey('n'))
	}
	if s.cache.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", s.cache.Cursor())
	}
}

func TestCheckLandsOnIssuingQuestion(t *testing.T) {
	svc := quizapi.NewMockService().AddCheck(quizapi.CheckVerdict(true, 1, nil))
	s := loadedScreen(t, svc)

	typeText(s, "42")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a check command")
	}
	// Move on before the reply arrives.
	s.Update(ctrlKey('n'))
	s.Update(cmd())

	if s.cache.At(0).State() != lifecycle.StateChecked {
		t.Errorf("question 1 state = %v, want checked", s.cache.At(0).State())
	}
	if s.cache.At(1).State() != lifecycle.StateGenerated {
		t.Errorf("question 2 state = %v, want generated", s.cache.At(1).State())
	}
	if svc.CheckCalls[0].QuestionID != "a" || svc.CheckCalls[0].Answer != "42" {
		t.Errorf("check call = %+v", svc.CheckCalls[0])
	}
}

func TestEmptyAnswerNotChecked(t *testing.T) {
	svc := quizapi.NewMockService()
	s := loadedScreen(t, svc)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty answer must not issue a check")
	}
	if s.cache.Current().ResultLine() != lifecycle.MsgEmptyAnswer {
		t.Errorf("result line = %q", s.cache.Current().ResultLine())
	}
}

func TestSummaryPush(t *testing.T) {
	svc := quizapi.NewMockService().AddCheck(quizapi.CheckVerdict(false, 0.5, "7"))
	s := loadedScreen(t, svc)
	typeText(s, "3")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())

	_, cmd = s.Update(ctrlKey('s'))
	if cmd == nil {
		t.Fatal("expected summary command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	view := push.Screen.View(100, 30)
	if !strings.Contains(view, "1 of 3 questions checked") {
		t.Errorf("summary view:\n%s", view)
	}
}
