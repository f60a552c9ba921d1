package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
)

// runDoneMsg tells the spinner that the wrapped work returned.
type runDoneMsg struct{}

// spinnerModel shows a message next to a spinner until the work returns or
// the user presses Ctrl+C, which cancels the work.
type spinnerModel struct {
	spinner  spinner.Model
	message  string
	cancel   context.CancelFunc
	done     bool
	quitting bool
}

func newSpinnerModel(message string, cancel context.CancelFunc) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		message: message,
		cancel:  cancel,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case runDoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m spinnerModel) renderContent() string {
	switch {
	case m.quitting:
		return hintStyle.Render("Cancelling, collecting partial results...") + "\n"
	case m.done:
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), statusStyle.Render(m.message))
}

// withSpinner runs work while a spinner shows message on out. When out is not
// a terminal the message is printed once instead. work always runs to
// completion before withSpinner returns.
func withSpinner(ctx context.Context, out io.Writer, message string, work func(context.Context)) error {
	if !isTerminal(out) {
		fmt.Fprintln(out, message)
		work(ctx)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(message, cancel), tea.WithOutput(out))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		work(ctx)
		p.Send(runDoneMsg{})
	}()

	_, err := p.Run()
	if err != nil {
		cancel()
	}
	<-finished
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
