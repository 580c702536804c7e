package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FakeClient serves a canned analysis from a fixture file instead of calling
// the backend. Used by the mock mode in tests.
type FakeClient struct {
	FixturePath string
}

func NewFakeClient(path string) *FakeClient {
	return &FakeClient{FixturePath: path}
}

func (f *FakeClient) Analyze(ctx context.Context, ref IssueRef) (Analysis, string, error) {
	_ = ctx
	_ = ref
	data, err := os.ReadFile(f.FixturePath)
	if err != nil {
		return Analysis{}, "", fmt.Errorf("failed to read analysis fixture: %w", err)
	}
	var analysis Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return Analysis{}, string(data), fmt.Errorf("invalid analysis fixture: %w", err)
	}
	return analysis, string(data), nil
}

func (f *FakeClient) Ping(ctx context.Context) error {
	_ = ctx
	if _, err := os.Stat(f.FixturePath); err != nil {
		return fmt.Errorf("analysis fixture missing: %w", err)
	}
	return nil
}
