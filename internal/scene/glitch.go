package scene

import (
	"image"
	"image/color"
	"math/rand"
	"time"
)

const (
	glitchRects   = 100
	glitchMinSide = 20
	glitchMaxSide = 50
)

// Glitch paints a burst of random opaque rectangles once per interval.
// The fire time it records also opens the fractal burst window.
type Glitch struct {
	interval time.Duration
	width    int
	height   int
	rng      *rand.Rand
}

func newGlitch(cfg Config, rng *rand.Rand) Glitch {
	return Glitch{interval: cfg.GlitchInterval, width: cfg.Width, height: cfg.Height, rng: rng}
}

// MaybeFire paints the rectangles and stamps timer when more than the
// interval has passed since the last fire. It reports whether it fired.
func (g Glitch) MaybeFire(s Surface, timer *GlitchTimer, now time.Time) bool {
	if !timer.LastFire.IsZero() && now.Sub(timer.LastFire) <= g.interval {
		return false
	}
	timer.LastFire = now

	for range glitchRects {
		pos := image.Pt(g.rng.Intn(g.width), g.rng.Intn(g.height))
		size := image.Pt(randBetween(g.rng, glitchMinSide, glitchMaxSide), randBetween(g.rng, glitchMinSide, glitchMaxSide))
		c := color.RGBA{
			R: uint8(g.rng.Intn(256)),
			G: uint8(g.rng.Intn(256)),
			B: uint8(g.rng.Intn(256)),
			A: 255,
		}
		s.DrawRect(pos, size, c, true)
	}
	return true
}

// randBetween returns a uniform int in [lo, hi].
func randBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
