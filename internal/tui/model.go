package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/expertpanel/internal/config"
	apperrors "github.com/agbru/expertpanel/internal/errors"
	"github.com/agbru/expertpanel/internal/expert"
	"github.com/agbru/expertpanel/internal/format"
	"github.com/agbru/expertpanel/internal/llm"
	"github.com/agbru/expertpanel/internal/orchestration"
	"github.com/agbru/expertpanel/internal/sysmon"
)

// rowState tracks the lifecycle of a single expert row.
type rowState int

const (
	statePending rowState = iota
	stateRunning
	stateDone
	stateFailed
)

// expertRow is the per-expert display state.
type expertRow struct {
	name     string
	state    rowState
	duration time.Duration
	output   string
	err      error
}

// Model is the root bubbletea model for the panel view.
type Model struct {
	rows    []expertRow
	spin    spinner.Model
	summary orchestration.Summary

	ctx      context.Context
	cancel   context.CancelFunc
	client   llm.Client
	panel    []expert.Descriptor
	config   config.AppConfig
	version  string
	ref      *programRef
	start    time.Time
	elapsed  time.Duration
	stats    sysmon.Stats
	width    int
	done     bool
	exitCode int
}

// NewModel creates a new TUI model for the given panel.
func NewModel(parentCtx context.Context, client llm.Client, panel []expert.Descriptor, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	rows := make([]expertRow, len(panel))
	for i, d := range panel {
		rows[i] = expertRow{name: d.Name}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = elapsedStyle

	return Model{
		rows:     rows,
		spin:     sp,
		ctx:      ctx,
		cancel:   cancel,
		client:   client,
		panel:    panel,
		config:   cfg,
		version:  version,
		ref:      &programRef{},
		start:    time.Now(),
		exitCode: apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		tickCmd(),
		startBatchCmd(m.ref, m.ctx, m.client, m.panel, m.config),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
		if m.done && msg.String() == "enter" {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.start)
		return m, tea.Batch(tickCmd(), sampleSysStatsCmd())

	case SysStatsMsg:
		m.stats = sysmon.Stats{
			CPUPercent: msg.CPUPercent,
			MemPercent: msg.MemPercent,
			Goroutines: msg.Goroutines,
		}
		return m, nil

	case InvocationStartedMsg:
		m.markStarted(msg.Name)
		return m, nil

	case InvocationSettledMsg:
		m.markSettled(msg)
		return m, nil

	case BatchCompleteMsg:
		m.done = true
		m.summary = msg.Summary
		m.exitCode = msg.ExitCode
		m.elapsed = time.Since(m.start)
		// The joined summary is authoritative: reconcile every row with it.
		for i, res := range msg.Summary.Results {
			if i >= len(m.rows) {
				break
			}
			m.rows[i].duration = res.Duration
			m.rows[i].output = res.Output
			m.rows[i].err = res.Err
			if res.Succeeded() {
				m.rows[i].state = stateDone
			} else {
				m.rows[i].state = stateFailed
			}
		}
		return m, nil

	case ContextCancelledMsg:
		if !m.done {
			m.done = true
			m.exitCode = apperrors.HandleBatchError(msg.Err, io.Discard)
		}
		return m, tea.Quit
	}

	return m, nil
}

// markStarted flips the first pending row with the given name to running.
// Duplicate names are resolved in input order.
func (m *Model) markStarted(name string) {
	for i := range m.rows {
		if m.rows[i].name == name && m.rows[i].state == statePending {
			m.rows[i].state = stateRunning
			return
		}
	}
}

// markSettled flips the first running row with the given name to its final
// state.
func (m *Model) markSettled(msg InvocationSettledMsg) {
	for i := range m.rows {
		if m.rows[i].name == msg.Name && m.rows[i].state == stateRunning {
			m.rows[i].duration = msg.Duration
			m.rows[i].err = msg.Err
			if msg.Err != nil {
				m.rows[i].state = stateFailed
			} else {
				m.rows[i].state = stateDone
			}
			return
		}
	}
}

// View renders the panel view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Expert Panel %s", m.version)))
	b.WriteString("\n")
	b.WriteString(queryStyle.Render(fmt.Sprintf("Query: %s", m.config.Query)))
	b.WriteString("\n")
	b.WriteString(elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", m.elapsed.Round(100*time.Millisecond))))
	b.WriteString("  ")
	b.WriteString(footerStyle.Render(fmt.Sprintf("cpu %.0f%%  mem %.0f%%  goroutines %d",
		m.stats.CPUPercent, m.stats.MemPercent, m.stats.Goroutines)))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("%d/%d succeeded, slowest expert %s",
			m.summary.SuccessCount, len(m.rows),
			format.FormatExecutionDuration(m.summary.TotalElapsed))))
		b.WriteString("\n\n")
		for _, row := range m.rows {
			b.WriteString(expertNameStyle.Render(row.name))
			b.WriteString("\n")
			b.WriteString(answerStyle.Render(m.wrap(row.output)))
			b.WriteString("\n\n")
		}
		b.WriteString(footerStyle.Render("press q to quit"))
	} else {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("press q to cancel"))
	}

	return b.String()
}

// renderRow renders a single status line for an expert.
func (m Model) renderRow(row expertRow) string {
	var status string
	switch row.state {
	case statePending:
		status = pendingStyle.Render("· waiting")
	case stateRunning:
		status = m.spin.View() + pendingStyle.Render(" consulting")
	case stateDone:
		status = successStyle.Render("✓ answered") + " " +
			durationStyle.Render(format.FormatExecutionDuration(row.duration))
	case stateFailed:
		status = failureStyle.Render(fmt.Sprintf("✗ failed (%v)", row.err)) + " " +
			durationStyle.Render(format.FormatExecutionDuration(row.duration))
	}
	return fmt.Sprintf("%s  %s", expertNameStyle.Width(m.nameWidth()).Render(row.name), status)
}

// nameWidth returns the column width for expert names.
func (m Model) nameWidth() int {
	w := 0
	for _, row := range m.rows {
		if len(row.name) > w {
			w = len(row.name)
		}
	}
	return w
}

// wrap soft-wraps text to the current terminal width.
func (m Model) wrap(s string) string {
	if m.width <= 4 {
		return s
	}
	return lipgloss.NewStyle().Width(m.width - 4).Render(s)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, client llm.Client, panel []expert.Descriptor, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, client, panel, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startBatchCmd returns a tea.Cmd that launches the orchestration.
func startBatchCmd(ref *programRef, ctx context.Context, client llm.Client, panel []expert.Descriptor, cfg config.AppConfig) tea.Cmd {
	return func() tea.Msg {
		results, err := orchestration.RunBatch(ctx, client, panel, cfg.Query, orchestration.BatchOptions{
			MaxConcurrent: cfg.MaxConcurrent,
			Observer:      &TUIObserver{ref: ref},
		})
		if err != nil {
			return ContextCancelledMsg{Err: err}
		}

		summary := orchestration.Summarize(results)
		exitCode := apperrors.ExitSuccess
		if summary.SuccessCount == 0 {
			exitCode = apperrors.ExitErrorAllFailed
		}
		return BatchCompleteMsg{Summary: summary, ExitCode: exitCode}
	}
}

// tickCmd returns a command that sends a TickMsg after 100ms.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads a resource usage snapshot off the UI thread.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
			Goroutines: s.Goroutines,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
