package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ndille/ghia/internal/analyzer"
)

// Validation failures are local and user-correctable; none of them ever
// reaches the network layer.
var (
	ErrMissingURL     = errors.New("missing URL")
	ErrInvalidScheme  = errors.New("invalid URL scheme: must start with http:// or https://")
	ErrNotGitHub      = errors.New("not a recognized repository URL: must be on github.com")
	ErrBadIssueNumber = errors.New("issue number must be 1 or greater")
)

var shorthandRe = regexp.MustCompile(`^([\w.-]+/[\w.-]+)#(\d+)$`)

// IssueRef checks raw form values and returns a submittable reference.
// Rules apply in order and the first failure wins.
func IssueRef(repoURL string, issueNumber int) (analyzer.IssueRef, error) {
	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		return analyzer.IssueRef{}, ErrMissingURL
	}
	if !strings.HasPrefix(repoURL, "http://") && !strings.HasPrefix(repoURL, "https://") {
		return analyzer.IssueRef{}, ErrInvalidScheme
	}
	if !strings.Contains(repoURL, "github.com") {
		return analyzer.IssueRef{}, ErrNotGitHub
	}
	if issueNumber < 1 {
		return analyzer.IssueRef{}, ErrBadIssueNumber
	}
	return analyzer.IssueRef{RepoURL: repoURL, IssueNumber: issueNumber}, nil
}

// ExpandShorthand turns OWNER/REPO#123 into a repository URL and issue
// number. Non-shorthand input is returned unchanged so callers can pass any
// raw value through before validation.
func ExpandShorthand(ref string) (repoURL string, issueNumber int, ok bool) {
	matches := shorthandRe.FindStringSubmatch(strings.TrimSpace(ref))
	if len(matches) != 3 {
		return ref, 0, false
	}
	number, err := strconv.Atoi(matches[2])
	if err != nil {
		return ref, 0, false
	}
	return fmt.Sprintf("https://github.com/%s", matches[1]), number, true
}
