package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/glitchwave/internal/config"
	"github.com/olivier-w/glitchwave/internal/ui"
)

var errStartupCancelled = errors.New("startup cancelled")

type startupResolvedMsg struct {
	model ui.Model
	err   error
}

// startupModel shows a spinner while the audio source opens, then hands
// over to the scene model.
type startupModel struct {
	ctx     context.Context
	cfg     config.Config
	arg     string
	sources *sourceHolder
	spinner spinner.Model
	width   int
	height  int
	err     error
}

func newStartupModel(ctx context.Context, cfg config.Config, arg string, sources *sourceHolder) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	return startupModel{
		ctx:     ctx,
		cfg:     cfg,
		arg:     arg,
		sources: sources,
		spinner: s,
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, openSourceCmd(m.ctx, m.cfg, m.arg, m.sources))
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startupResolvedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}

		cmds := []tea.Cmd{msg.model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return msg.model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}
	return m, nil
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("glitchwave"))
	b.WriteString("\n\n  ")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupStatusStyle.Render(openingLabel(m.arg)))
	b.WriteString("\n\n  ")
	b.WriteString(startupHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func openingLabel(arg string) string {
	if arg == "" {
		return "Opening microphone..."
	}
	return "Opening " + filepath.Base(arg) + "..."
}

func openSourceCmd(ctx context.Context, cfg config.Config, arg string, sources *sourceHolder) tea.Cmd {
	return func() tea.Msg {
		src, title, err := openSource(cfg, arg)
		if err != nil {
			return startupResolvedMsg{err: err}
		}
		if !sources.set(src) {
			return startupResolvedMsg{err: errStartupCancelled}
		}
		return startupResolvedMsg{model: ui.New(ctx, src, cfg.Scene(), cfg.Rand(), title)}
	}
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)
