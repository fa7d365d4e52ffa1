package quizapi

// Schema names a JSON Schema used to validate a response body.
type Schema struct {
	Name       string
	Definition map[string]any
}

var questionObject = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question_text":     map[string]any{"type": "string"},
		"chapter_number":    map[string]any{"type": "integer"},
		"subchapter_number": map[string]any{"type": "integer"},
		"meta":              map[string]any{"type": "object"},
	},
}

// CatalogSchema validates GET /api/catalog.
var CatalogSchema = &Schema{
	Name: "catalog",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"chapters"},
		"properties": map[string]any{
			"chapters": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"chapter_number", "chapter_name"},
					"properties": map[string]any{
						"chapter_number": map[string]any{"type": "integer"},
						"chapter_name":   map[string]any{"type": "string"},
						"subchapters": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":     "object",
								"required": []any{"subchapter_number", "subchapter_name"},
								"properties": map[string]any{
									"subchapter_number": map[string]any{"type": "integer"},
									"subchapter_name":   map[string]any{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	},
}

// envelope builds the schema of a 2xx body that carries field unless it
// reports "ok": false, in which case only the error envelope applies.
func envelope(field string, props map[string]any) map[string]any {
	props["ok"] = map[string]any{"type": "boolean"}
	props["error"] = map[string]any{"type": "string"}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"if": map[string]any{
			"required":   []any{"ok"},
			"properties": map[string]any{"ok": map[string]any{"const": false}},
		},
		"else": map[string]any{"required": []any{field}},
	}
}

// QuestionSchema validates a 2xx POST /api/question.
var QuestionSchema = &Schema{
	Name: "question",
	Definition: envelope("question", map[string]any{
		"question": questionObject,
	}),
}

// CheckSchema validates a successful POST /api/question/check.
var CheckSchema = &Schema{
	Name: "check",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok":      map[string]any{"type": "boolean"},
			"correct": map[string]any{"type": []any{"boolean", "null"}},
			"score":   map[string]any{"type": []any{"number", "null"}},
		},
	},
}

// TestSchema validates a 2xx POST /api/test/generate.
var TestSchema = &Schema{
	Name: "test",
	Definition: envelope("test", map[string]any{
		"test":         map[string]any{"type": "array", "items": questionObject},
		"error_code":   map[string]any{"type": "string"},
		"partial_test": map[string]any{"type": "array", "items": questionObject},
	}),
}

// ErrorSchema validates the body of any non-success response.
var ErrorSchema = &Schema{
	Name: "error",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok":           map[string]any{"type": "boolean"},
			"error":        map[string]any{"type": "string"},
			"error_code":   map[string]any{"type": "string"},
			"partial_test": map[string]any{"type": "array", "items": questionObject},
		},
	},
}
