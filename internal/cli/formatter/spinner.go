package formatter

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// StopSpinnerMsg ends a SpinnerModel, replacing its line with Final.
type StopSpinnerMsg struct {
	Final string
}

// SpinnerModel is a one-line bubbletea model showing a dot spinner and a message.
type SpinnerModel struct {
	spinner spinner.Model
	message string
	final   string
	done    bool
}

// NewSpinnerModel creates a spinner model for message.
func NewSpinnerModel(message string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StylePurple
	return SpinnerModel{spinner: s, message: message}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StopSpinnerMsg:
		m.done = true
		m.final = msg.Final
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.done {
		if m.final == "" {
			return ""
		}
		return m.final + "\n"
	}
	return fmt.Sprintf("  %s %s", m.spinner.View(), Dim(m.message))
}

// Done reports whether the spinner has been stopped.
func (m SpinnerModel) Done() bool { return m.done }

// StartSpinner shows message with an animated spinner on out and returns a
// stop function that replaces the spinner line with final (empty clears it).
// When animate is false it prints message once and final on stop.
func StartSpinner(out io.Writer, message string, animate bool) func(final string) {
	if !animate {
		fmt.Fprintln(out, Dim(message))
		return func(final string) {
			if final != "" {
				fmt.Fprintln(out, final)
			}
		}
	}

	p := tea.NewProgram(NewSpinnerModel(message), tea.WithOutput(out), tea.WithInput(nil))
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = p.Run()
	}()

	var once sync.Once
	return func(final string) {
		once.Do(func() {
			p.Send(StopSpinnerMsg{Final: final})
			<-finished
		})
	}
}
