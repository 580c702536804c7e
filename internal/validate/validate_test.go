package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndille/ghia/internal/analyzer"
)

func TestIssueRef(t *testing.T) {
	tests := []struct {
		name    string
		repoURL string
		number  int
		wantErr error
	}{
		{name: "valid https", repoURL: "https://github.com/facebook/react", number: 123},
		{name: "valid http", repoURL: "http://github.com/facebook/react", number: 1},
		{name: "empty url", repoURL: "", number: 1, wantErr: ErrMissingURL},
		{name: "whitespace url", repoURL: "   ", number: 1, wantErr: ErrMissingURL},
		{name: "bad scheme", repoURL: "ftp://github.com/a/b", number: 1, wantErr: ErrInvalidScheme},
		{name: "no scheme", repoURL: "github.com/a/b", number: 1, wantErr: ErrInvalidScheme},
		{name: "wrong host", repoURL: "https://example.com/a/b", number: 1, wantErr: ErrNotGitHub},
		{name: "zero issue", repoURL: "https://github.com/a/b", number: 0, wantErr: ErrBadIssueNumber},
		{name: "negative issue", repoURL: "https://github.com/a/b", number: -3, wantErr: ErrBadIssueNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := IssueRef(tt.repoURL, tt.number)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, analyzer.IssueRef{}, ref)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.number, ref.IssueNumber)
		})
	}
}

// A URL failing several rules reports the first one only.
func TestIssueRefRuleOrder(t *testing.T) {
	_, err := IssueRef("ftp://example.com/a/b", 0)
	require.ErrorIs(t, err, ErrInvalidScheme)
}

func TestExpandShorthand(t *testing.T) {
	tests := []struct {
		in         string
		wantURL    string
		wantNumber int
		wantOK     bool
	}{
		{in: "facebook/react#123", wantURL: "https://github.com/facebook/react", wantNumber: 123, wantOK: true},
		{in: "vercel/next.js#9", wantURL: "https://github.com/vercel/next.js", wantNumber: 9, wantOK: true},
		{in: "https://github.com/facebook/react", wantURL: "https://github.com/facebook/react", wantOK: false},
		{in: "react#123", wantOK: false},
		{in: "facebook/react", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			url, number, ok := ExpandShorthand(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantURL, url)
				assert.Equal(t, tt.wantNumber, number)
			}
		})
	}
}
