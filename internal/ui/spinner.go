// Package ui provides terminal progress feedback for long-running steps
// such as cloning a template repository.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/k88hudson/hayaku/internal/prompt"
)

// Spinner is an indeterminate activity indicator.
type Spinner interface {
	// SetTitle replaces the text shown next to the spinner.
	SetTitle(title string)
	// Stop halts the spinner and clears its output.
	Stop()
}

// NewSpinner creates a spinner writing to stdout. When stdout is not a
// terminal the spinner degrades to plain log lines.
func NewSpinner(title string) Spinner {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return newPlainSpinner(title, os.Stdout)
	}
	return newAnimatedSpinner(title)
}

// --- animatedSpinner ---

type spinnerTitleMsg string

type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(prompt.ColorPrimary))
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

type animatedSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newAnimatedSpinner(title string) *animatedSpinner {
	p := tea.NewProgram(newSpinnerModel(title))
	s := &animatedSpinner{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return s
}

func (s *animatedSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

func (s *animatedSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// --- plainSpinner ---

type plainSpinner struct {
	title   string
	writer  io.Writer
	stopped bool
}

func newPlainSpinner(title string, w io.Writer) *plainSpinner {
	s := &plainSpinner{title: title, writer: w}
	_, _ = fmt.Fprintln(w, title)
	return s
}

func (s *plainSpinner) SetTitle(title string) {
	s.title = title
	_, _ = fmt.Fprintln(s.writer, title)
}

func (s *plainSpinner) Stop() {
	s.stopped = true
}
