package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ndille/ghia/internal/analyzer"
	"github.com/ndille/ghia/internal/config"
	"github.com/ndille/ghia/internal/render"
	"github.com/ndille/ghia/internal/store"
	"github.com/ndille/ghia/internal/validate"
)

func NewTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive issue analysis form",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			if !app.Config.TUI.Enabled {
				return fmt.Errorf("tui is disabled in config")
			}
			model := newTUIModel(app.Client, app.Store, app.Config.Examples, app.Timeout)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
	return cmd
}

type tuiFocus int

const (
	focusURL tuiFocus = iota
	focusNumber
)

type resultView int

const (
	viewOverview resultView = iota
	viewReport
	viewRaw
)

func (v resultView) String() string {
	switch v {
	case viewReport:
		return "report"
	case viewRaw:
		return "raw"
	default:
		return "overview"
	}
}

// analysisMsg carries one completed request back into the update loop. seq
// identifies the submission it belongs to; stale responses are discarded.
type analysisMsg struct {
	seq      int
	analysis analyzer.Analysis
	raw      string
	err      error
}

// outcome is the most recent completed result or classified failure. A new
// submission supersedes it entirely; the two are never merged.
type outcome struct {
	analysis analyzer.Analysis
	raw      string
	reqErr   *analyzer.RequestError
}

// tuiModel owns all submission state: the pending input fields, the last
// submitted reference and the last completed outcome. It is initialized
// fresh when the TUI starts and dies with the program; only the history
// store outlives a session.
type tuiModel struct {
	svc      analyzer.Service
	store    *store.Store
	examples []config.Example
	timeout  time.Duration

	urlInput    textinput.Model
	numberInput textinput.Model
	focus       tuiFocus
	spin        spinner.Model

	seq        int
	pending    bool
	ref        analyzer.IssueRef
	outcome    *outcome
	view       resultView
	inputErr   error
	status     string
	exampleIdx int
	width      int
	height     int
}

func newTUIModel(svc analyzer.Service, st *store.Store, examples []config.Example, timeout time.Duration) tuiModel {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://github.com/facebook/react"
	urlInput.Prompt = "Repository URL: "
	urlInput.Focus()

	numberInput := textinput.New()
	numberInput.Placeholder = "1"
	numberInput.Prompt = "Issue number:   "
	numberInput.CharLimit = 9

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return tuiModel{
		svc:         svc,
		store:       st,
		examples:    examples,
		timeout:     timeout,
		urlInput:    urlInput,
		numberInput: numberInput,
		spin:        spin,
		exampleIdx:  -1,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case analysisMsg:
		if msg.seq != m.seq {
			// Response from a superseded submission; newer state wins.
			return m, nil
		}
		m.pending = false
		if msg.err != nil {
			var reqErr *analyzer.RequestError
			if !errors.As(msg.err, &reqErr) {
				reqErr = &analyzer.RequestError{Kind: analyzer.KindUnexpected, Detail: msg.err.Error()}
			}
			m.outcome = &outcome{reqErr: reqErr}
			return m, nil
		}
		m.outcome = &outcome{analysis: msg.analysis, raw: msg.raw}
		m.view = viewOverview
		if m.store != nil {
			_ = m.store.SaveAnalysis(m.ref.RepoURL, m.ref.IssueNumber, msg.raw)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			return m.toggleFocus(), nil
		case "enter":
			return m.submit()
		case "ctrl+e":
			return m.prefillNextExample(), nil
		case "ctrl+v":
			if m.outcome != nil && m.outcome.reqErr == nil {
				m.view = (m.view + 1) % 3
			}
			return m, nil
		case "ctrl+x":
			return m.export(), nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusURL {
		m.urlInput, cmd = m.urlInput.Update(msg)
	} else {
		m.numberInput, cmd = m.numberInput.Update(msg)
	}
	return m, cmd
}

func (m tuiModel) toggleFocus() tuiModel {
	if m.focus == focusURL {
		m.focus = focusNumber
		m.urlInput.Blur()
		m.numberInput.Focus()
	} else {
		m.focus = focusURL
		m.numberInput.Blur()
		m.urlInput.Focus()
	}
	return m
}

// prefillNextExample cycles through the configured quick-start shortcuts.
// It only overwrites the pending inputs; it never submits.
func (m tuiModel) prefillNextExample() tuiModel {
	if len(m.examples) == 0 {
		return m
	}
	m.exampleIdx = (m.exampleIdx + 1) % len(m.examples)
	example := m.examples[m.exampleIdx]
	m.urlInput.SetValue(example.RepoURL)
	m.numberInput.SetValue(strconv.Itoa(example.IssueNumber))
	m.inputErr = nil
	m.status = fmt.Sprintf("Filled example %q. Press enter to analyze.", example.Name)
	return m
}

// submit validates the pending inputs and starts one request. While a
// request is in flight further submits are ignored; the sequence token
// ensures a response that loses the race is discarded.
func (m tuiModel) submit() (tuiModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	m.status = ""

	rawURL := m.urlInput.Value()
	if expanded, number, ok := validate.ExpandShorthand(rawURL); ok {
		rawURL = expanded
		m.urlInput.SetValue(expanded)
		if strings.TrimSpace(m.numberInput.Value()) == "" {
			m.numberInput.SetValue(strconv.Itoa(number))
		}
	}
	number, err := strconv.Atoi(strings.TrimSpace(m.numberInput.Value()))
	if err != nil {
		m.inputErr = fmt.Errorf("issue number must be an integer")
		return m, nil
	}
	ref, err := validate.IssueRef(rawURL, number)
	if err != nil {
		m.inputErr = err
		return m, nil
	}

	m.inputErr = nil
	m.ref = ref
	m.outcome = nil
	m.pending = true
	m.seq++
	seq := m.seq
	svc := m.svc
	timeout := m.timeout

	request := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		analysis, raw, err := svc.Analyze(ctx, ref)
		return analysisMsg{seq: seq, analysis: analysis, raw: raw, err: err}
	}
	return m, tea.Batch(m.spin.Tick, request)
}

func (m tuiModel) export() tuiModel {
	if m.outcome == nil || m.outcome.reqErr != nil {
		m.status = "Nothing to export yet."
		return m
	}
	path := exportFilename(m.ref)
	if err := render.ExportJSON(m.outcome.analysis, path); err != nil {
		m.status = fmt.Sprintf("Export failed: %v", err)
		return m
	}
	m.status = fmt.Sprintf("Exported analysis to %s", path)
	return m
}

func exportFilename(ref analyzer.IssueRef) string {
	name := strings.TrimPrefix(ref.RepoURL, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.TrimPrefix(name, "github.com/")
	name = strings.ReplaceAll(strings.Trim(name, "/"), "/", "-")
	return fmt.Sprintf("ghia-%s-%d.json", name, ref.IssueNumber)
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true)
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tuiStatusStyle = lipgloss.NewStyle().Faint(true)
)

func (m tuiModel) View() string {
	sections := []string{
		tuiTitleStyle.Render("🤖 GitHub Issue Assistant"),
		"",
		m.urlInput.View(),
		m.numberInput.View(),
	}

	if m.inputErr != nil {
		sections = append(sections, "", tuiErrorStyle.Render("❌ "+m.inputErr.Error()))
	}
	if m.pending {
		sections = append(sections, "", m.spin.View()+" Analyzing issue…")
	}
	if m.outcome != nil {
		sections = append(sections, "", m.resultView())
	}
	if m.status != "" {
		sections = append(sections, "", tuiStatusStyle.Render(m.status))
	}
	sections = append(sections, "", m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m tuiModel) resultView() string {
	if m.outcome.reqErr != nil {
		return tuiErrorStyle.Render(strings.TrimRight(render.RequestError(m.outcome.reqErr), "\n"))
	}
	var content string
	switch m.view {
	case viewReport:
		content = render.Report(m.outcome.analysis)
	case viewRaw:
		dump, err := render.RawJSON(m.outcome.analysis)
		if err != nil {
			return tuiErrorStyle.Render(err.Error())
		}
		content = dump
	default:
		content = render.Overview(m.outcome.analysis)
	}
	header := tuiStatusStyle.Render(fmt.Sprintf("view: %s (ctrl+v to switch)", m.view))
	return header + "\n" + strings.TrimRight(content, "\n")
}

func (m tuiModel) footerView() string {
	return tuiStatusStyle.Render("enter analyze • tab switch field • ctrl+e example • ctrl+v view • ctrl+x export • esc quit")
}
