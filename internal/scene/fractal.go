package scene

import (
	"image"
	"image/color"
	"math/rand"
	"time"
)

const (
	fractalBursts   = 5
	fractalMinSize  = 20
	fractalMaxSize  = 50
	fractalMinDepth = 2
	fractalMaxDepth = 4
)

// Fractal scatters recursive four-way circle bursts for a short window
// after each glitch.
type Fractal struct {
	window time.Duration
	width  int
	height int
	rng    *rand.Rand
}

func newFractal(cfg Config, rng *rand.Rand) Fractal {
	return Fractal{window: cfg.BurstWindow, width: cfg.Width, height: cfg.Height, rng: rng}
}

// MaybeBurst draws the bursts while now is inside the window opened by
// lastFire. It returns the number of circles drawn.
func (f Fractal) MaybeBurst(s Surface, now, lastFire time.Time) int {
	if lastFire.IsZero() || now.Sub(lastFire) >= f.window {
		return 0
	}

	drawn := 0
	for range fractalBursts {
		origin := image.Pt(f.rng.Intn(f.width), f.rng.Intn(f.height))
		size := randBetween(f.rng, fractalMinSize, fractalMaxSize)
		depth := randBetween(f.rng, fractalMinDepth, fractalMaxDepth)
		drawn += f.burst(s, origin, size, depth)
	}
	return drawn
}

func (f Fractal) burst(s Surface, at image.Point, size, depth int) int {
	if depth == 0 {
		return 0
	}
	c := color.RGBA{
		R: uint8(randBetween(f.rng, 100, 255)),
		G: uint8(randBetween(f.rng, 100, 255)),
		B: 255,
		A: 255,
	}
	s.DrawCircle(at, size, c, true)

	half := size / 2
	n := 1
	n += f.burst(s, at.Add(image.Pt(half, 0)), half, depth-1)
	n += f.burst(s, at.Add(image.Pt(-half, 0)), half, depth-1)
	n += f.burst(s, at.Add(image.Pt(0, half)), half, depth-1)
	n += f.burst(s, at.Add(image.Pt(0, -half)), half, depth-1)
	return n
}

// BurstCircles returns how many circles a single burst of the given depth
// draws: 1 + 4 + ... + 4^(depth-1).
func BurstCircles(depth int) int {
	total, level := 0, 1
	for range depth {
		total += level
		level *= 4
	}
	return total
}
