package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ndille/ghia/internal/analyzer"
	"github.com/ndille/ghia/internal/config"
	"github.com/ndille/ghia/internal/validate"
)

func testExamples() []config.Example {
	return []config.Example{
		{Name: "react", RepoURL: "https://github.com/facebook/react", IssueNumber: 1},
		{Name: "vscode", RepoURL: "https://github.com/microsoft/vscode", IssueNumber: 2},
	}
}

func newTestTUIModel() tuiModel {
	return newTUIModel(nil, nil, testExamples(), time.Second)
}

func sampleMsg(seq int) analysisMsg {
	return analysisMsg{
		seq: seq,
		analysis: analyzer.Analysis{
			Summary:         "s",
			Type:            "bug",
			PriorityScore:   "4 - serious",
			SuggestedLabels: []string{"bug"},
			PotentialImpact: "i",
		},
		raw: `{"summary":"s"}`,
	}
}

func TestPrefillDoesNotSubmit(t *testing.T) {
	m := newTestTUIModel()
	m = m.prefillNextExample()

	if m.urlInput.Value() != "https://github.com/facebook/react" {
		t.Fatalf("unexpected url: %q", m.urlInput.Value())
	}
	if m.numberInput.Value() != "1" {
		t.Fatalf("unexpected number: %q", m.numberInput.Value())
	}
	if m.pending || m.seq != 0 {
		t.Fatalf("prefill must not submit (pending=%v seq=%d)", m.pending, m.seq)
	}

	m = m.prefillNextExample()
	if m.urlInput.Value() != "https://github.com/microsoft/vscode" {
		t.Fatalf("expected example cycling, got %q", m.urlInput.Value())
	}
}

func TestSubmitValidatesBeforeNetwork(t *testing.T) {
	m := newTestTUIModel()
	m.urlInput.SetValue("https://example.com/a/b")
	m.numberInput.SetValue("1")

	m, cmd := m.submit()
	if cmd != nil {
		t.Fatalf("validation failure must not start a request")
	}
	if !errors.Is(m.inputErr, validate.ErrNotGitHub) {
		t.Fatalf("unexpected input error: %v", m.inputErr)
	}
	if m.pending || m.seq != 0 {
		t.Fatalf("validation failure must not change submission state")
	}
}

func TestSubmitStartsOneRequest(t *testing.T) {
	m := newTestTUIModel()
	m.urlInput.SetValue("https://github.com/facebook/react")
	m.numberInput.SetValue("123")

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatalf("expected a request command")
	}
	if !m.pending || m.seq != 1 {
		t.Fatalf("expected pending submission with seq 1, got pending=%v seq=%d", m.pending, m.seq)
	}
	if m.outcome != nil {
		t.Fatalf("new submission must clear the previous outcome")
	}

	// Submit is ignored while a request is in flight.
	m2, cmd2 := m.submit()
	if cmd2 != nil {
		t.Fatalf("second submit while pending must be ignored")
	}
	if m2.seq != 1 {
		t.Fatalf("seq must not advance while pending, got %d", m2.seq)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	m := newTestTUIModel()
	m.urlInput.SetValue("https://github.com/facebook/react")
	m.numberInput.SetValue("123")
	m, _ = m.submit()

	// A newer submission superseded seq 1 before its response arrived.
	m.pending = false
	m, _ = m.submit()
	if m.seq != 2 {
		t.Fatalf("expected seq 2, got %d", m.seq)
	}

	updated, _ := m.Update(sampleMsg(1))
	m = updated.(tuiModel)
	if m.outcome != nil {
		t.Fatalf("stale response must be discarded")
	}
	if !m.pending {
		t.Fatalf("stale response must not resolve the pending submission")
	}

	updated, _ = m.Update(sampleMsg(2))
	m = updated.(tuiModel)
	if m.pending {
		t.Fatalf("current response must resolve the submission")
	}
	if m.outcome == nil || m.outcome.analysis.Summary != "s" {
		t.Fatalf("expected outcome from current response, got %+v", m.outcome)
	}
}

func TestErrorOutcomeSupersededByNewSubmission(t *testing.T) {
	m := newTestTUIModel()
	m.urlInput.SetValue("https://github.com/facebook/react")
	m.numberInput.SetValue("123")
	m, _ = m.submit()

	updated, _ := m.Update(analysisMsg{seq: 1, err: &analyzer.RequestError{Kind: analyzer.KindTimedOut}})
	m = updated.(tuiModel)
	if m.outcome == nil || m.outcome.reqErr == nil || m.outcome.reqErr.Kind != analyzer.KindTimedOut {
		t.Fatalf("expected timed-out outcome, got %+v", m.outcome)
	}

	m, _ = m.submit()
	if m.outcome != nil {
		t.Fatalf("resubmission must supersede the error outcome")
	}
}

func TestViewCyclesOnlyWithResult(t *testing.T) {
	m := newTestTUIModel()
	m.urlInput.SetValue("https://github.com/facebook/react")
	m.numberInput.SetValue("123")
	m, _ = m.submit()
	updated, _ := m.Update(sampleMsg(1))
	m = updated.(tuiModel)

	if m.view != viewOverview {
		t.Fatalf("expected overview after result, got %v", m.view)
	}
	for _, want := range []resultView{viewReport, viewRaw, viewOverview} {
		m.view = (m.view + 1) % 3
		if m.view != want {
			t.Fatalf("expected view %v, got %v", want, m.view)
		}
		if !strings.Contains(m.resultView(), "s") {
			t.Fatalf("view %v lost the summary", m.view)
		}
	}
}

func TestShorthandExpandsOnSubmit(t *testing.T) {
	m := newTestTUIModel()
	m.urlInput.SetValue("facebook/react#42")

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatalf("expected a request command, got input error %v", m.inputErr)
	}
	if m.ref.RepoURL != "https://github.com/facebook/react" || m.ref.IssueNumber != 42 {
		t.Fatalf("unexpected ref: %+v", m.ref)
	}
}
