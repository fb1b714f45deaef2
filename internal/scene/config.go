package scene

import (
	"image/color"
	"time"
)

const (
	defaultWidth           = 800
	defaultHeight          = 600
	defaultSceneSwitch     = 44 * time.Second
	defaultGlitchInterval  = 30 * time.Second
	defaultBurstWindow     = 3 * time.Second
	defaultGrowthThreshold = 20000
)

// Config holds the tunables of the scene engine.
type Config struct {
	Width  int
	Height int
	Base   color.RGBA

	SceneSwitch    time.Duration // orbit -> growth after this much elapsed time
	GlitchInterval time.Duration // minimum time between glitch fires
	BurstWindow    time.Duration // fractal bursts run this long after a glitch

	// GrowthThreshold is compared against the peak amplitude on the
	// int16 sample scale.
	GrowthThreshold float64
}

// DefaultConfig returns the stock 800x600 white-base configuration.
func DefaultConfig() Config {
	return Config{
		Width:           defaultWidth,
		Height:          defaultHeight,
		Base:            color.RGBA{R: 255, G: 255, B: 255, A: 255},
		SceneSwitch:     defaultSceneSwitch,
		GlitchInterval:  defaultGlitchInterval,
		BurstWindow:     defaultBurstWindow,
		GrowthThreshold: defaultGrowthThreshold,
	}
}
