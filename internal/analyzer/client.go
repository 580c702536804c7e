package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

// Service is what the CLI and TUI submit analysis requests through. The raw
// string is the verbatim response body backing the raw view and export.
type Service interface {
	Analyze(ctx context.Context, ref IssueRef) (Analysis, string, error)
	Ping(ctx context.Context) error
}

// Client talks to the analysis backend over HTTP. It holds no request
// state; each Analyze call is a single POST with no automatic retry.
type Client struct {
	baseURL    string
	schemaPath string
	httpc      *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, schemaPath string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		schemaPath: schemaPath,
		httpc:      &http.Client{Timeout: timeout},
		log:        log,
	}
}

// errorBody is the backend's failure response shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// Analyze submits one issue reference and classifies every failure into the
// RequestError taxonomy.
func (c *Client) Analyze(ctx context.Context, ref IssueRef) (Analysis, string, error) {
	payload, err := json.Marshal(ref)
	if err != nil {
		return Analysis{}, "", &RequestError{Kind: KindUnexpected, Detail: err.Error(), BaseURL: c.baseURL}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return Analysis{}, "", &RequestError{Kind: KindUnexpected, Detail: err.Error(), BaseURL: c.baseURL}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		reqErr := classifyTransport(err, c.baseURL)
		c.log.Debug("analyze request failed",
			zap.String("repo_url", ref.RepoURL),
			zap.Int("issue_number", ref.IssueNumber),
			zap.String("kind", reqErr.Kind.String()),
			zap.Duration("elapsed", time.Since(start)))
		return Analysis{}, "", reqErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Analysis{}, "", classifyTransport(err, c.baseURL)
	}
	c.log.Debug("analyze request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return Analysis{}, string(body), &RequestError{Kind: KindRejected, Detail: extractDetail(body), BaseURL: c.baseURL}
	}

	if err := validateAnalysis(c.schemaPath, body); err != nil {
		return Analysis{}, string(body), &RequestError{Kind: KindRejected, Detail: extractDetail(body), BaseURL: c.baseURL}
	}
	var analysis Analysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return Analysis{}, string(body), &RequestError{Kind: KindRejected, Detail: extractDetail(body), BaseURL: c.baseURL}
	}
	return analysis, string(body), nil
}

// Ping checks that something answers at the backend base URL. Any HTTP
// response counts as reachable; only transport failures do not.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return &RequestError{Kind: KindUnexpected, Detail: err.Error(), BaseURL: c.baseURL}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return classifyTransport(err, c.baseURL)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// extractDetail pulls the backend's detail field out of an error-shaped
// body, falling back to "Unknown error" when there is none.
func extractDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	return "Unknown error"
}

func validateAnalysis(schemaPath string, data []byte) error {
	abspath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	schema, err := jsonschema.Compile("file://" + abspath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("analysis response failed schema validation: %w", err)
	}
	return nil
}
