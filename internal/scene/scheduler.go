package scene

import (
	"math/rand"
	"time"
)

// Mode is the active foreground animation.
type Mode uint8

const (
	ModeOrbit Mode = iota
	ModeGrowth
)

func (m Mode) String() string {
	if m == ModeGrowth {
		return "growth"
	}
	return "orbit"
}

// FrameReport summarizes one Scheduler.Frame call.
type FrameReport struct {
	Mode           Mode
	Elapsed        time.Duration
	GlitchFired    bool
	FractalCircles int
	GrowthDrawn    bool
	Orbits         [OrbitCount]OrbitStep // zero in growth mode
}

// Scheduler drives one frame of the scene: background glitch and fractal
// layers first, then whichever foreground animator the elapsed time selects.
type Scheduler struct {
	cfg     Config
	surface Surface
	state   *AnimationState
	start   time.Time
	mode    Mode

	orbit   OrbitField
	growth  GrowthPolygon
	glitch  Glitch
	fractal Fractal
}

// NewScheduler creates a scheduler whose clock starts at start.
func NewScheduler(cfg Config, surface Surface, start time.Time, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		surface: surface,
		state:   NewAnimationState(),
		start:   start,
		mode:    ModeOrbit,
		orbit:   newOrbitField(cfg),
		growth:  newGrowthPolygon(cfg),
		glitch:  newGlitch(cfg, rng),
		fractal: newFractal(cfg, rng),
	}
}

// ModeAt returns the mode selected by elapsed alone.
func (s *Scheduler) ModeAt(elapsed time.Duration) Mode {
	if elapsed > s.cfg.SceneSwitch {
		return ModeGrowth
	}
	return ModeOrbit
}

// Mode returns the latched mode as of the last frame.
func (s *Scheduler) Mode() Mode { return s.mode }

// State exposes the animation state for inspection.
func (s *Scheduler) State() *AnimationState { return s.state }

// Frame renders one frame for the given wall-clock time and amplitude.
func (s *Scheduler) Frame(now time.Time, amplitude float64) FrameReport {
	elapsed := now.Sub(s.start)
	// growth is terminal even if the clock steps backwards
	if s.mode == ModeOrbit {
		s.mode = s.ModeAt(elapsed)
	}
	rep := FrameReport{Mode: s.mode, Elapsed: elapsed}

	s.surface.Clear()
	rep.GlitchFired = s.glitch.MaybeFire(s.surface, &s.state.Glitch, now)
	rep.FractalCircles = s.fractal.MaybeBurst(s.surface, now, s.state.Glitch.LastFire)

	switch s.mode {
	case ModeGrowth:
		rep.GrowthDrawn = s.growth.Animate(s.surface, s.state.Growth, amplitude)
	default:
		rep.Orbits = s.orbit.Animate(s.surface, &s.state.Orbits, amplitude)
	}

	s.surface.Present()
	return rep
}
