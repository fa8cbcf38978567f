package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// accountCheckMsg announces that the account at index is being checked.
type accountCheckMsg struct {
	index int
	label string
}

type checksFinishedMsg struct {
	err error
}

// checkProgressModel shows which account is being probed while the checks
// run outside the update loop.
type checkProgressModel struct {
	spinner spinner.Model
	dim     lipgloss.Style
	total   int
	current int
	label   string
	started time.Time
	now     func() time.Time
	run     tea.Cmd
	err     error
	done    bool
}

func newCheckProgressModel(total int, run tea.Cmd, now func() time.Time) checkProgressModel {
	if now == nil {
		now = time.Now
	}

	return checkProgressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		total:   total,
		started: now(),
		now:     now,
		run:     run,
	}
}

func (m checkProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m checkProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountCheckMsg:
		m.current = msg.index + 1
		m.label = msg.label
		return m, nil
	case checksFinishedMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m checkProgressModel) View() string {
	if m.done {
		return ""
	}

	progress := fmt.Sprintf("Checking accounts %d/%d", m.current, m.total)
	if m.label != "" {
		progress += ": " + m.label
	}
	elapsed := m.now().Sub(m.started).Round(100 * time.Millisecond)

	return m.spinner.View() + " " + progress + " " + m.dim.Render(fmt.Sprintf("(%s)", elapsed))
}

// runCheckProgress runs check while drawing progress on output. check calls
// step before each account so the view can follow along.
func runCheckProgress(ctx context.Context, output io.Writer, total int, check func(ctx context.Context, step func(index int, label string)) error) error {
	var p *tea.Program

	run := func() tea.Msg {
		err := check(ctx, func(index int, label string) {
			p.Send(accountCheckMsg{index: index, label: label})
		})
		return checksFinishedMsg{err: err}
	}

	p = tea.NewProgram(
		newCheckProgressModel(total, run, nil),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("account check progress: %w", err)
	}

	model, ok := final.(checkProgressModel)
	if !ok {
		return fmt.Errorf("unexpected progress model type %T", final)
	}
	return model.err
}
