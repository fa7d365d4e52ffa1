package quizapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// NewCheckResult builds a CheckResult from a decoded check body.
func NewCheckResult(raw json.RawMessage, fields map[string]any) *CheckResult {
	if len(raw) == 0 {
		raw, _ = json.Marshal(fields)
	}
	r := &CheckResult{
		Fields: fields,
		Keys:   orderedKeys(raw),
		Raw:    raw,
	}
	if r.Fields == nil {
		r.Fields = map[string]any{}
	}
	if b, ok := r.Fields["correct"].(bool); ok {
		r.Correct = &b
	}
	if f, ok := r.Fields["score"].(float64); ok {
		r.Score = &f
	}
	r.CorrectAnswer = r.Fields["correct_answer"]
	for _, k := range []string{"error", "message"} {
		if s, ok := r.Fields[k].(string); ok && s != "" {
			r.Message = s
			break
		}
	}
	if len(r.Keys) == 0 {
		for k := range r.Fields {
			r.Keys = append(r.Keys, k)
		}
		slices.Sort(r.Keys)
	}
	return r
}

// Verdict returns the one-line outcome shown after a check.
func (r *CheckResult) Verdict() string {
	score := ""
	if r.Score != nil {
		score = fmt.Sprintf(" (score: %s%%)", FormatScore(*r.Score))
	}
	switch {
	case r.Correct == nil:
		if r.Message != "" {
			return r.Message
		}
		return "Check not implemented for this question type yet."
	case *r.Correct:
		return "Correct" + score
	default:
		answer := ""
		if s := FormatValue(r.CorrectAnswer); r.CorrectAnswer != nil && s != "" {
			answer = " Correct answer: " + s
		}
		return "Incorrect" + score + "." + answer
	}
}

// Explanation formats the explanation view. Results carrying hits/missing/
// wrong counters, N-Queens timings, and anything else (first 12 keys) are
// formatted differently.
func (r *CheckResult) Explanation() string {
	if r == nil || len(r.Fields) == 0 {
		return "No explanation available."
	}
	has := func(k string) bool { _, ok := r.Fields[k]; return ok }

	if has("hits") || has("missing") || has("wrong") {
		lines := r.headerLines()
		for _, k := range []string{"hits", "missing", "wrong"} {
			if has(k) {
				lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(k[:1])+k[1:], FormatValue(r.Fields[k])))
			}
		}
		return strings.Join(lines, "\n")
	}

	if r.Fields["type"] == "nqueens" || r.Fields["problem_name"] == "N-Queens" {
		lines := r.headerLines()
		if s, ok := r.Fields["fastest_algorithm"].(string); ok && s != "" {
			lines = append(lines, "Fastest algorithm: "+s)
		}
		if has("execution_times") && r.Fields["execution_times"] != nil {
			lines = append(lines, "Timing details available in Raw JSON.")
		}
		if len(lines) == 0 {
			return "N-Queens explanation is available in Raw JSON."
		}
		return strings.Join(lines, "\n")
	}

	keys := r.Keys
	if len(keys) > 12 {
		keys = keys[:12]
	}
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, FormatValue(r.Fields[k])))
	}
	return strings.Join(lines, "\n")
}

// RawJSON returns the indented response body.
func (r *CheckResult) RawJSON() string {
	return IndentJSON(r.Raw)
}

func (r *CheckResult) headerLines() []string {
	var lines []string
	if r.Correct != nil {
		yes := "No"
		if *r.Correct {
			yes = "Yes"
		}
		lines = append(lines, "Correct: "+yes)
	}
	if _, ok := r.Fields["score"]; ok {
		lines = append(lines, "Score: "+FormatValue(r.Fields["score"]))
	}
	return lines
}

// FormatValue renders a decoded JSON value for display: strings verbatim,
// numbers without trailing zeros, everything else as compact JSON.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return FormatScore(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// IndentJSON pretty-prints raw, returning it unchanged if it is not JSON.
func IndentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// orderedKeys returns the top-level object keys of raw in body order.
func orderedKeys(raw json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
	}
	return keys
}
