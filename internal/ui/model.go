package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/glitchwave/internal/analysis"
	"github.com/olivier-w/glitchwave/internal/audio"
	"github.com/olivier-w/glitchwave/internal/canvas"
	"github.com/olivier-w/glitchwave/internal/scene"
	"github.com/olivier-w/glitchwave/internal/termframe"
	"github.com/olivier-w/glitchwave/internal/util"
)

const (
	hudLines      = 4
	spectrumBands = 24
	defaultWidth  = 80
	defaultHeight = 24
)

// titled and tracked are optional Source capabilities the HUD shows.
type titled interface {
	Title() string
}

type tracked interface {
	Position() time.Duration
	Duration() time.Duration
}

// Model is the Bubbletea model that drives the scene from audio frames.
type Model struct {
	ctx      context.Context
	source   audio.Source
	sched    *scene.Scheduler
	raster   *canvas.Raster
	renderer *termframe.Renderer
	bands    *analysis.Bands
	meter    *levelMeter
	progress progress.Model
	now      func() time.Time

	title    string
	width    int
	height   int
	showHUD  bool
	report   scene.FrameReport
	screen   string
	glitches int
	err      error
	quitting bool
}

// New creates a Model for src. title is shown when the source has none of
// its own.
func New(ctx context.Context, src audio.Source, cfg scene.Config, rng *rand.Rand, title string) Model {
	return newModel(ctx, src, cfg, rng, title, time.Now)
}

func newModel(ctx context.Context, src audio.Source, cfg scene.Config, rng *rand.Rand, title string, now func() time.Time) Model {
	raster := canvas.New(cfg.Width, cfg.Height)
	p := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
	return Model{
		ctx:      ctx,
		source:   src,
		sched:    scene.NewScheduler(cfg, raster, now(), rng),
		raster:   raster,
		renderer: termframe.NewRenderer(),
		bands:    analysis.NewBands(spectrumBands),
		meter:    newLevelMeter(),
		progress: p,
		now:      now,
		title:    title,
		width:    defaultWidth,
		height:   defaultHeight,
		showHUD:  true,
	}
}

// Err returns the source error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForFrame(m.ctx, m.source),
		tea.SetWindowTitle(windowTitle(m.currentTitle())),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.step(msg.frame)
		return m, waitForFrame(m.ctx, m.source)

	case sourceDoneMsg:
		switch {
		case errors.Is(msg.err, io.EOF):
			log.Printf("source finished after %s", util.FormatElapsed(m.report.Elapsed))
		case errors.Is(msg.err, context.Canceled):
		default:
			log.Printf("source error: %v", msg.err)
			m.err = msg.err
		}
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		if msg.String() == "h" {
			m.showHUD = !m.showHUD
			m.screen = m.renderCanvas()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-20, 10)
		m.screen = m.renderCanvas()
		return m, nil
	}

	return m, nil
}

// step analyses one frame and draws the scene for it.
func (m *Model) step(f audio.Frame) {
	feat := analysis.Analyze(f.Samples)

	prev := m.sched.Mode()
	m.report = m.sched.Frame(m.now(), feat.Amplitude)
	if m.report.Mode != prev {
		log.Printf("scene %s -> %s at %s", prev, m.report.Mode, util.FormatElapsed(m.report.Elapsed))
	}
	if m.report.GlitchFired {
		m.glitches++
		log.Printf("glitch #%d at %s", m.glitches, util.FormatElapsed(m.report.Elapsed))
	}

	m.bands.Update(feat.Magnitudes)
	m.meter.update(feat.Amplitude)
	m.screen = m.renderCanvas()
}

func (m Model) renderCanvas() string {
	rows := m.height
	if m.showHUD {
		rows -= hudLines
	}
	b := m.raster.Bounds()
	outW, outH := termframe.FitCells(m.width, rows, b.Dx(), b.Dy())
	return m.renderer.Render(m.raster.Frame(), b.Dx(), b.Dy(), outW, outH)
}

func (m Model) currentTitle() string {
	if t, ok := m.source.(titled); ok {
		if s := t.Title(); s != "" {
			return s
		}
	}
	return m.title
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.showHUD {
		return m.screen
	}
	return m.screen + "\n" + m.hud()
}

func (m Model) hud() string {
	var lines [hudLines]string

	status := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render(m.currentTitle()),
		modeStyle.Render(m.report.Mode.String()),
		timeStyle.Render(util.FormatElapsed(m.report.Elapsed)),
	)
	if m.report.GlitchFired || m.report.FractalCircles > 0 {
		status += "  " + glitchStyle.Render("glitch")
	}
	lines[0] = status

	meterWidth := max(m.width-spectrumBands-8, 10)
	lines[1] = m.meter.view(meterWidth) + "  " + renderSpectrum(m.bands.Normalized())

	if t, ok := m.source.(tracked); ok && t.Duration() > 0 {
		pos, dur := t.Position(), t.Duration()
		lines[2] = fmt.Sprintf("%s %s %s",
			timeStyle.Render(util.FormatDuration(pos)),
			m.progress.ViewAs(progressRatio(pos.Seconds(), dur.Seconds())),
			timeStyle.Render(util.FormatDuration(dur)),
		)
	} else {
		lines[2] = timeStyle.Render("live input")
	}

	lines[3] = helpStyle.Render(helpText(m.showHUD))

	for i := range lines {
		lines[i] = spaces(1) + lines[i]
	}
	return strings.Join(lines[:], "\n")
}

func windowTitle(title string) string {
	if title == "" {
		return "glitchwave"
	}
	return title + " · glitchwave"
}
