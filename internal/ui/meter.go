package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/glitchwave/internal/audio"
)

const (
	meterFPS  = audio.SampleRate / audio.BufferFrames
	peakDecay = 0.02
)

// levelMeter smooths the per-frame peak with a spring and keeps a decaying
// peak marker.
type levelMeter struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	peak   float64
}

func newLevelMeter() *levelMeter {
	return &levelMeter{spring: harmonica.NewSpring(harmonica.FPS(meterFPS), 6.0, 0.7)}
}

// update feeds one frame's peak amplitude (int16 scale) and returns the
// smoothed level in [0,1].
func (m *levelMeter) update(amplitude float64) float64 {
	target := peakToLevel(amplitude / 32768.0)
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, target)
	m.pos = min(max(m.pos, 0), 1)

	if m.pos > m.peak {
		m.peak = m.pos
	} else {
		m.peak = max(m.peak-peakDecay, 0)
	}
	return m.pos
}

// peakToLevel converts a 0..1 peak to a bar level on a dB scale, so quiet
// input still moves the meter.
func peakToLevel(peak float64) float64 {
	const dbFloor = -40.0
	if peak < 1e-6 {
		return 0
	}
	db := 20.0 * math.Log10(peak)
	if db < dbFloor {
		return 0
	}
	return min((db-dbFloor)/-dbFloor, 1)
}

func (m *levelMeter) view(width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(m.pos * float64(width))
	peakPos := min(int(m.peak*float64(width)), width-1)

	var sb strings.Builder
	for i := range width {
		switch {
		case i < filled:
			style := meterLowStyle
			if i >= width*8/10 {
				style = meterHighStyle
			} else if i >= width*6/10 {
				style = meterMidStyle
			}
			sb.WriteString(style.Render("█"))
		case i == peakPos && peakPos > 0:
			sb.WriteString(meterPeakStyle.Render("│"))
		default:
			sb.WriteString(helpStyle.Render("─"))
		}
	}
	return sb.String()
}
