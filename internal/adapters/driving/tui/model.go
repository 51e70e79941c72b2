// Package tui provides the form-based screening UI: one multi-line
// job description input, one submit action, and a rendered analysis
// result with its requirements score.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driving"
)

// state is the form's lifecycle phase.
type state int

const (
	stateEditing state = iota
	stateScreening
	stateDone
)

// analysisMsg carries a completed analysis back into Update.
type analysisMsg struct {
	analysis *domain.Analysis
}

// errMsg carries a pipeline failure back into Update.
type errMsg struct {
	err error
}

// Model is the Bubble Tea model for the screening form.
type Model struct {
	screener driving.Screener
	styles   *Styles
	input    textarea.Model
	spinner  spinner.Model

	state    state
	analysis *domain.Analysis
	err      error
	width    int
	ready    bool
}

// NewModel creates the screening form bound to a screener.
func NewModel(screener driving.Screener) Model {
	ta := textarea.New()
	ta.Placeholder = "Enter job description..."
	ta.Focus()
	ta.SetHeight(8)
	ta.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		screener: screener,
		styles:   DefaultStyles(),
		input:    ta,
		spinner:  sp,
		state:    stateEditing,
	}
}

// Init initialises the form.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles key, window and pipeline messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true
		if msg.Width > 4 {
			m.input.SetWidth(msg.Width - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			return m.submit()
		}

	case analysisMsg:
		m.state = stateDone
		m.analysis = msg.analysis
		m.err = nil
		return m, nil

	case errMsg:
		m.state = stateEditing
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.state != stateScreening {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// While a run is in flight the form is read-only.
	if m.state == stateScreening {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the form and starts the screening pipeline. An
// empty job description raises a visible error without invoking any
// service.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state == stateScreening {
		return m, nil
	}

	jobDesc := strings.TrimSpace(m.input.Value())
	if jobDesc == "" {
		m.err = fmt.Errorf("please enter a job description")
		return m, nil
	}

	m.state = stateScreening
	m.err = nil
	m.analysis = nil
	return m, tea.Batch(m.spinner.Tick, screenCmd(m.screener, jobDesc))
}

// screenCmd runs the screening pipeline off the UI loop.
func screenCmd(screener driving.Screener, jobDesc string) tea.Cmd {
	return func() tea.Msg {
		analysis, err := screener.Screen(context.Background(), jobDesc)
		if err != nil {
			return errMsg{err: err}
		}
		return analysisMsg{analysis: analysis}
	}
}

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Screena — Resumé Screening"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputBox.Render(m.input.View()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.ErrorBanner.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.state == stateScreening:
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.SuccessBanner.Render(" Analyzing candidates. This may take a moment..."))
		b.WriteString("\n")
	case m.state == stateDone && m.analysis != nil:
		b.WriteString(m.styles.SuccessBanner.Render("Analysis complete"))
		b.WriteString("\n")
		b.WriteString(m.styles.ResultBox.Render(m.analysis.Result))
		b.WriteString("\n")
		b.WriteString(m.styles.Score.Render(fmt.Sprintf("Requirements Score: %g", m.analysis.Score)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("ctrl+s: analyze • esc: quit"))
	return b.String()
}

// Err exposes the current error for tests.
func (m Model) Err() error { return m.err }

// Analysis exposes the current analysis for tests.
func (m Model) Analysis() *domain.Analysis { return m.analysis }
