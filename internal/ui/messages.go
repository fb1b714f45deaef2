package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/glitchwave/internal/audio"
)

type frameMsg struct {
	frame audio.Frame
}

// sourceDoneMsg ends the frame chain. err is io.EOF for a finished file.
type sourceDoneMsg struct {
	err error
}

// waitForFrame blocks on the source for one frame. Each frameMsg schedules
// the next wait, so frames are handled strictly in order.
func waitForFrame(ctx context.Context, src audio.Source) tea.Cmd {
	return func() tea.Msg {
		f, err := src.Next(ctx)
		if err != nil {
			return sourceDoneMsg{err: err}
		}
		return frameMsg{frame: f}
	}
}
