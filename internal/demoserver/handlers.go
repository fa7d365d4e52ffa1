package demoserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/rules"
)

const maxBody = 1 << 20

// Error codes of POST /api/test/generate.
const (
	CodeBadInput         = "BAD_INPUT"
	CodeGenerationFailed = "GENERATION_FAILED"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	body := map[string]any{"ok": false, "error": msg}
	if code != "" {
		body["error_code"] = code
	}
	writeJSON(w, status, body)
}

// decode reads a JSON object body. An empty body decodes as the zero value.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

type questionBody struct {
	Chapter    json.Number    `json:"chapter_number"`
	Subchapter json.Number    `json:"subchapter_number"`
	Options    map[string]any `json:"options"`
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var body questionBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	ch, err1 := body.Chapter.Int64()
	sub, err2 := body.Subchapter.Int64()
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "chapter_number and subchapter_number are required", "")
		return
	}
	sel := catalog.Selection{Chapter: int(ch), Subchapter: int(sub)}

	raw := stringOptions(body.Options)
	rec := options.Build(catalog.KindFor(sel), rules.ParseTier(raw[string(rules.FieldDifficulty)]), raw)

	q, err := s.generate(sel, rec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "question": q.wire()})
}

// stringOptions flattens decoded option values for options.Build.
func stringOptions(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch x := v.(type) {
		case string:
			out[k] = x
		case json.Number:
			out[k] = x.String()
		case bool:
			out[k] = strconv.FormatBool(x)
		}
	}
	return out
}

type checkBody struct {
	QuestionID any `json:"question_id"`
	Answer     any `json:"answer"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var body checkBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	id := scalar(body.QuestionID)
	if id == "" {
		writeError(w, http.StatusBadRequest, "question_id is required", "")
		return
	}
	answer := strings.TrimSpace(scalar(body.Answer))
	if answer == "" {
		writeError(w, http.StatusBadRequest, "answer is required", "")
		return
	}

	q, ok := s.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown question_id: "+id, "")
		return
	}
	writeJSON(w, http.StatusOK, q.grade(answer))
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	default:
		return ""
	}
}

type testBody struct {
	Count       json.Number `json:"num_questions"`
	Difficulty  string      `json:"difficulty"`
	Subchapters any         `json:"subchapters"`
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	var body testBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", CodeBadInput)
		return
	}

	count, err := body.Count.Int64()
	if err != nil || count <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid input: num_questions must be >= 1.", CodeBadInput)
		return
	}
	if count > int64(s.cfg.MaxTestQuestions) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid input: num_questions must be <= %d.", s.cfg.MaxTestQuestions), CodeBadInput)
		return
	}
	list, ok := body.Subchapters.([]any)
	if !ok || len(list) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid input: subchapters must be a non-empty list.", CodeBadInput)
		return
	}
	var sels []catalog.Selection
	for _, item := range list {
		if sel, ok := parseRef(item); ok {
			sels = append(sels, sel)
		}
	}
	if len(sels) == 0 {
		writeError(w, http.StatusBadRequest, "No valid subchapters selected.", CodeBadInput)
		return
	}

	tier := rules.TierMedium
	if strings.TrimSpace(body.Difficulty) != "" {
		tier = rules.ParseTier(body.Difficulty)
	}

	want := int(count)
	test := make([]map[string]any, 0, want)
	for attempts := 0; len(test) < want && attempts < want*10; attempts++ {
		sel := s.pick(sels)
		q, err := s.generate(sel, s.randomOptions(catalog.KindFor(sel), tier))
		if err != nil {
			s.logger.Printf("test generation: %s: %v", sel, err)
			continue
		}
		test = append(test, q.wire())
	}

	if len(test) < want {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":           false,
			"error":        fmt.Sprintf("Could only generate %d/%d questions. Some generators failed repeatedly.", len(test), want),
			"error_code":   CodeGenerationFailed,
			"partial_test": test,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "test": test})
}

// parseRef accepts "ch:sub", {"id":"ch:sub"}, {"chapter_number","subchapter_number"}
// and [ch, sub].
func parseRef(item any) (catalog.Selection, bool) {
	switch x := item.(type) {
	case string:
		sel, err := catalog.ParseSelection(x)
		return sel, err == nil
	case map[string]any:
		ch, okC := x["chapter_number"].(json.Number)
		sub, okS := x["subchapter_number"].(json.Number)
		if okC && okS {
			return numberPair(ch, sub)
		}
		if id, ok := x["id"].(string); ok {
			sel, err := catalog.ParseSelection(id)
			return sel, err == nil
		}
	case []any:
		if len(x) == 2 {
			ch, okC := x[0].(json.Number)
			sub, okS := x[1].(json.Number)
			if okC && okS {
				return numberPair(ch, sub)
			}
		}
	}
	return catalog.Selection{}, false
}

func numberPair(ch, sub json.Number) (catalog.Selection, bool) {
	c, err1 := ch.Int64()
	s, err2 := sub.Int64()
	if err1 != nil || err2 != nil {
		return catalog.Selection{}, false
	}
	return catalog.Selection{Chapter: int(c), Subchapter: int(s)}, true
}
