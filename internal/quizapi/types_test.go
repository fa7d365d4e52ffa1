package quizapi

import (
	"encoding/json"
	"testing"
)

func TestQuestion_IdentityFallback(t *testing.T) {
	tests := []struct {
		name string
		in   string
		id   string
		text string
	}{
		{"question_id", `{"question_id":"a","question_text":"T"}`, "a", "T"},
		{"qid wins over id", `{"qid":"b","id":"c","text":"T2"}`, "b", "T2"},
		{"numeric id", `{"id":42,"prompt":"P"}`, "42", "P"},
		{"empty string skipped", `{"question_id":"  ","qid":"d"}`, "d", ""},
		{"meta qid", `{"meta":{"qid":"m1"}}`, "m1", ""},
		{"meta question_id", `{"meta":{"question_id":9}}`, "9", ""},
		{"missing", `{"question_text":"orphan","meta":{}}`, "", "orphan"},
		{"bool ignored", `{"question_id":true}`, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Question
			if err := json.Unmarshal([]byte(tt.in), &q); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if q.ID != tt.id || q.Text != tt.text {
				t.Errorf("got id=%q text=%q, want id=%q text=%q", q.ID, q.Text, tt.id, tt.text)
			}
			if q.HasID() != (tt.id != "") {
				t.Errorf("HasID = %v", q.HasID())
			}
		})
	}
}

func TestQuestion_MarshalPreservesOriginal(t *testing.T) {
	in := `{"qid":"x","prompt":"p","meta":{"type":"csp","board":[1,2]}}`
	var q Question
	if err := json.Unmarshal([]byte(in), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Errorf("marshal = %s, want %s", out, in)
	}
}

func TestQuestion_MarshalWithoutRaw(t *testing.T) {
	q := Question{ID: "q1", Text: "hello", Chapter: 1, Subchapter: 1}
	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Question
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != "q1" || back.Text != "hello" || back.Chapter != 1 {
		t.Errorf("back = %+v", back)
	}
}

func TestCheckResult_Verdict(t *testing.T) {
	tests := []struct {
		fields map[string]any
		want   string
	}{
		{map[string]any{"correct": true, "score": 80.0}, "Correct (score: 80%)"},
		{map[string]any{"correct": true}, "Correct"},
		{map[string]any{"correct": false, "score": 0.0, "correct_answer": 3.0}, "Incorrect (score: 0%). Correct answer: 3"},
		{map[string]any{"correct": false}, "Incorrect."},
		{map[string]any{"correct": false, "correct_answer": []any{"a", "b"}}, `Incorrect. Correct answer: ["a","b"]`},
		{map[string]any{"message": "Unsupported"}, "Unsupported"},
		{map[string]any{}, "Check not implemented for this question type yet."},
	}
	for _, tt := range tests {
		if got := NewCheckResult(nil, tt.fields).Verdict(); got != tt.want {
			t.Errorf("Verdict(%v) = %q, want %q", tt.fields, got, tt.want)
		}
	}
}

func TestCheckResult_Explanation(t *testing.T) {
	hits := NewCheckResult(json.RawMessage(`{"ok":true,"correct":false,"score":50,"hits":2,"missing":2}`), map[string]any{
		"ok": true, "correct": false, "score": 50.0, "hits": 2.0, "missing": 2.0,
	})
	if got := hits.Explanation(); got != "Correct: No\nScore: 50\nHits: 2\nMissing: 2" {
		t.Errorf("hits explanation = %q", got)
	}

	nq := NewCheckResult(nil, map[string]any{
		"type": "nqueens", "correct": true, "fastest_algorithm": "backtracking", "execution_times": map[string]any{"bfs": 1.0},
	})
	if got := nq.Explanation(); got != "Correct: Yes\nFastest algorithm: backtracking\nTiming details available in Raw JSON." {
		t.Errorf("nqueens explanation = %q", got)
	}

	bare := NewCheckResult(nil, map[string]any{"problem_name": "N-Queens"})
	if got := bare.Explanation(); got != "N-Queens explanation is available in Raw JSON." {
		t.Errorf("bare nqueens explanation = %q", got)
	}

	raw := json.RawMessage(`{"z":1,"a":"two","m":null}`)
	generic := NewCheckResult(raw, map[string]any{"z": 1.0, "a": "two", "m": nil})
	if got := generic.Explanation(); got != "z: 1\na: two\nm: null" {
		t.Errorf("generic explanation = %q", got)
	}
}

func TestCheckResult_ExplanationCapsKeys(t *testing.T) {
	fields := map[string]any{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n"} {
		fields[k] = 1.0
	}
	r := NewCheckResult(nil, fields)
	if got := len(splitLines(r.Explanation())); got != 12 {
		t.Errorf("explanation lines = %d, want 12", got)
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func TestIndentJSON(t *testing.T) {
	if got := IndentJSON(json.RawMessage(`{"a":1}`)); got != "{\n  \"a\": 1\n}" {
		t.Errorf("IndentJSON = %q", got)
	}
	if got := IndentJSON(json.RawMessage(`not json`)); got != "not json" {
		t.Errorf("IndentJSON passthrough = %q", got)
	}
}

func TestQuestion_AnswerOptions(t *testing.T) {
	var q Question
	json.Unmarshal([]byte(`{"meta":{"answer_options":["Yes","No"],"answer_option_keys":["y","n"]}}`), &q)
	opts := q.AnswerOptions()
	if len(opts) != 2 || opts[1] != (AnswerOption{Label: "No", Key: "n"}) {
		t.Errorf("options = %+v", opts)
	}

	json.Unmarshal([]byte(`{"meta":{"answer_options":[1,2,3],"answer_option_keys":["a"]}}`), &q)
	opts = q.AnswerOptions()
	if len(opts) != 3 || opts[2].Key != "3" {
		t.Errorf("mismatched keys should fall back to labels: %+v", opts)
	}

	if (Question{}).AnswerOptions() != nil {
		t.Error("no meta should yield no options")
	}
}
