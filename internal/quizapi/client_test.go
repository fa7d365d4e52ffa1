package quizapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/rules"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestClient_FetchCatalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/catalog" || r.Method != http.MethodGet {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"chapters":[{"chapter_number":3,"chapter_name":"Constraints","subchapters":[{"subchapter_number":1,"subchapter_name":"CSP"}]}]}`)
	})

	cat, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	if len(cat.Chapters) != 1 || cat.Chapters[0].Subchapters[0].Name != "CSP" {
		t.Errorf("catalog = %+v", cat)
	}
}

func TestClient_FetchCatalogSchemaViolation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"chapters":[{"chapter_number":"three"}]}`)
	})

	_, err := c.FetchCatalog(context.Background())
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestClient_FetchCatalogServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"ok":false,"error":"internal server error"}`)
	})

	_, err := c.FetchCatalog(context.Background())
	var failed *ErrRequestFailed
	if !errors.As(err, &failed) || failed.Status != 500 {
		t.Fatalf("expected ErrRequestFailed(500), got %T: %v", err, err)
	}
}

func TestClient_GenerateQuestion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["chapter_number"] != float64(2) || body["subchapter_number"] != float64(2) {
			t.Errorf("selector = %v", body)
		}
		opts, _ := body["options"].(map[string]any)
		if opts["difficulty"] != "easy" || opts["root_player"] != "MAX" {
			t.Errorf("options = %v", opts)
		}
		io.WriteString(w, `{"ok":true,"question":{"question_id":"q-7","question_text":"Value at root?","meta":{"type":"minmax"}}}`)
	})

	resp, err := c.GenerateQuestion(context.Background(), GenerateRequest{
		Selection: catalog.Selection{Chapter: 2, Subchapter: 2},
		Options:   options.Build(rules.KindMinMax, rules.TierEasy, nil),
	})
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if !resp.OK || resp.Status != 200 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Question == nil || resp.Question.ID != "q-7" || resp.Question.Type() != "minmax" {
		t.Errorf("question = %+v", resp.Question)
	}
}

func TestClient_GenerateQuestionNotOK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"ok":false,"error":"Unknown subchapter"}`)
	})

	resp, err := c.GenerateQuestion(context.Background(), GenerateRequest{})
	if err != nil {
		t.Fatalf("non-ok status must not be an error: %v", err)
	}
	if resp.OK || resp.Status != 400 || resp.Error != "Unknown subchapter" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClient_GenerateQuestionNotOKWithSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":false,"error":"Generator unavailable"}`)
	})

	resp, err := c.GenerateQuestion(context.Background(), GenerateRequest{})
	if err != nil {
		t.Fatalf("ok:false on 200 must surface the service error, got %v", err)
	}
	if resp.OK || resp.Status != 200 || resp.Error != "Generator unavailable" || resp.Question != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClient_GenerateQuestionMissingQuestion(t *testing.T) {
	for _, body := range []string{`{"ok":true}`, `{}`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		})

		_, err := c.GenerateQuestion(context.Background(), GenerateRequest{})
		var invErr *ErrInvalidResponse
		if !errors.As(err, &invErr) {
			t.Errorf("%s: expected ErrInvalidResponse, got %T: %v", body, err, err)
		}
	}
}

func TestClient_GenerateTestNotOKWithSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":false,"error":"Too many questions","error_code":"bad_request"}`)
	})

	resp, err := c.GenerateTest(context.Background(), TestRequest{Count: 99})
	if err != nil {
		t.Fatalf("GenerateTest: %v", err)
	}
	if resp.OK || resp.Error != "Too many questions" || resp.ErrorCode != "BAD_REQUEST" || len(resp.Questions) != 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClient_GenerateQuestionHTMLErrorPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `<html>bad gateway</html>`)
	})

	resp, err := c.GenerateQuestion(context.Background(), GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OK || resp.Status != 502 || resp.Error != "" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Timeout: time.Second})
	_, err := c.CheckAnswer(context.Background(), CheckRequest{QuestionID: "q", Answer: "1"})
	var failed *ErrRequestFailed
	if !errors.As(err, &failed) || failed.Op != OpCheck {
		t.Fatalf("expected ErrRequestFailed, got %T: %v", err, err)
	}
}

func TestClient_CheckAnswer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req CheckRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.QuestionID != "q-1" || req.Answer != "3" {
			t.Errorf("req = %+v", req)
		}
		io.WriteString(w, `{"ok":true,"correct":false,"score":40,"correct_answer":"5","hits":2,"missing":1,"wrong":0}`)
	})

	resp, err := c.CheckAnswer(context.Background(), CheckRequest{QuestionID: "q-1", Answer: "3"})
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if !resp.OK || resp.Result == nil {
		t.Fatalf("resp = %+v", resp)
	}
	if got := resp.Result.Verdict(); got != "Incorrect (score: 40%). Correct answer: 5" {
		t.Errorf("Verdict = %q", got)
	}
	if got := resp.Result.Keys; len(got) != 7 || got[0] != "ok" || got[6] != "wrong" {
		t.Errorf("Keys = %v", got)
	}
}

func TestClient_CheckAnswerBodyNotOK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":false,"error":"question expired"}`)
	})

	resp, err := c.CheckAnswer(context.Background(), CheckRequest{QuestionID: "q", Answer: "a"})
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if resp.OK || resp.Error != "question expired" || resp.Result != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClient_CheckAnswerWrongType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":true,"correct":"yes"}`)
	})

	_, err := c.CheckAnswer(context.Background(), CheckRequest{QuestionID: "q", Answer: "a"})
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestClient_GenerateTest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		subs, _ := body["subchapters"].([]any)
		if body["num_questions"] != float64(2) || body["difficulty"] != "hard" || len(subs) != 2 || subs[1] != "3:1" {
			t.Errorf("body = %v", body)
		}
		io.WriteString(w, `{"ok":true,"test":[{"question_id":"a","question_text":"A"},{"qid":7,"prompt":"B"}]}`)
	})

	resp, err := c.GenerateTest(context.Background(), TestRequest{
		Count:       2,
		Difficulty:  rules.TierHard,
		Subchapters: []catalog.Selection{{Chapter: 1, Subchapter: 1}, {Chapter: 3, Subchapter: 1}},
	})
	if err != nil {
		t.Fatalf("GenerateTest: %v", err)
	}
	if !resp.OK || len(resp.Questions) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Questions[1].ID != "7" || resp.Questions[1].Text != "B" {
		t.Errorf("second question = %+v", resp.Questions[1])
	}
}

func TestClient_GenerateTestPartial(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"ok":false,"error":"Could only generate 1/3 questions.","error_code":"generation_failed","partial_test":[{"question_id":"p1"}]}`)
	})

	resp, err := c.GenerateTest(context.Background(), TestRequest{Count: 3})
	if err != nil {
		t.Fatalf("GenerateTest: %v", err)
	}
	if resp.OK || resp.ErrorCode != "GENERATION_FAILED" || len(resp.Partial) != 1 || resp.Partial[0].ID != "p1" {
		t.Errorf("resp = %+v", resp)
	}
}
