package quizapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/smartest/internal/catalog"
)

const maxBodyBytes = 4 << 20

// Client talks to the quiz service over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchCatalog returns the topic tree.
func (c *Client) FetchCatalog(ctx context.Context) (*catalog.Catalog, error) {
	status, raw, err := c.do(ctx, OpCatalog, http.MethodGet, "/api/catalog", nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		msg, _, _ := parseFailure(raw)
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, &ErrRequestFailed{Op: OpCatalog, Status: status, Err: errors.New(msg)}
	}
	if _, err := validateBody(OpCatalog, status, CatalogSchema, raw); err != nil {
		return nil, err
	}
	var cat catalog.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, &ErrInvalidResponse{Op: OpCatalog, Status: status, Content: raw, Err: err}
	}
	return &cat, nil
}

// GenerateQuestion requests one question.
func (c *Client) GenerateQuestion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	status, raw, err := c.do(ctx, OpGenerate, http.MethodPost, "/api/question", req)
	if err != nil {
		return nil, err
	}
	resp := &GenerateResponse{Status: status, Raw: raw}
	if !success(status) {
		resp.Error, _, _ = parseFailure(raw)
		return resp, nil
	}
	if _, err := validateBody(OpGenerate, status, QuestionSchema, raw); err != nil {
		return nil, err
	}
	var body struct {
		OK       *bool     `json:"ok"`
		Error    string    `json:"error"`
		Question *Question `json:"question"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &ErrInvalidResponse{Op: OpGenerate, Status: status, Content: raw, Err: err}
	}
	resp.OK = body.OK == nil || *body.OK
	resp.Error = body.Error
	if resp.OK {
		resp.Question = body.Question
	}
	return resp, nil
}

// CheckAnswer submits an answer.
func (c *Client) CheckAnswer(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	status, raw, err := c.do(ctx, OpCheck, http.MethodPost, "/api/question/check", req)
	if err != nil {
		return nil, err
	}
	resp := &CheckResponse{Status: status, Raw: raw}
	if !success(status) {
		resp.Error, _, _ = parseFailure(raw)
		return resp, nil
	}
	parsed, err := validateBody(OpCheck, status, CheckSchema, raw)
	if err != nil {
		return nil, err
	}
	fields, _ := parsed.(map[string]any)
	if ok, isBool := fields["ok"].(bool); isBool && !ok {
		resp.Error, _ = fields["error"].(string)
		return resp, nil
	}
	resp.OK = true
	resp.Result = NewCheckResult(raw, fields)
	return resp, nil
}

// GenerateTest requests a batch of questions.
func (c *Client) GenerateTest(ctx context.Context, req TestRequest) (*TestResponse, error) {
	status, raw, err := c.do(ctx, OpTest, http.MethodPost, "/api/test/generate", req)
	if err != nil {
		return nil, err
	}
	resp := &TestResponse{Status: status, Raw: raw}
	if !success(status) {
		resp.Error, resp.ErrorCode, resp.Partial = parseFailure(raw)
		return resp, nil
	}
	if _, err := validateBody(OpTest, status, TestSchema, raw); err != nil {
		return nil, err
	}
	var body struct {
		OK    *bool      `json:"ok"`
		Error string     `json:"error"`
		Test  []Question `json:"test"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &ErrInvalidResponse{Op: OpTest, Status: status, Content: raw, Err: err}
	}
	resp.OK = body.OK == nil || *body.OK
	if !resp.OK {
		resp.Error, resp.ErrorCode, resp.Partial = parseFailure(raw)
		return resp, nil
	}
	resp.Questions = body.Test
	return resp, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, &ErrRequestFailed{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &ErrRequestFailed{Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return res.StatusCode, nil, &ErrRequestFailed{Op: op, Status: res.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return res.StatusCode, raw, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// parseFailure extracts the error envelope of a non-success body. Bodies
// that are not JSON (proxy error pages) yield empty values.
func parseFailure(raw []byte) (msg, code string, partial []Question) {
	if _, err := validateBody("error", 0, ErrorSchema, raw); err != nil {
		return "", "", nil
	}
	var body struct {
		Error   string     `json:"error"`
		Code    string     `json:"error_code"`
		Partial []Question `json:"partial_test"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", "", nil
	}
	return body.Error, strings.ToUpper(body.Code), body.Partial
}
