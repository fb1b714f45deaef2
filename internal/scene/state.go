package scene

import "time"

// OrbitCount is the fixed number of orbiting discs.
const OrbitCount = 10

// OrbitObject is the persistent per-disc state of the orbit field.
type OrbitObject struct {
	Angle                float64 // radians, accumulates forever
	GravityVelocity      float64
	BaseFibonacciModulus int
}

// GlitchTimer records the most recent glitch fire. The zero value means
// the glitch has never fired.
type GlitchTimer struct {
	LastFire time.Time
}

// AnimationState is every piece of animation state that outlives a frame.
// It is owned by a Scheduler and only touched from its Frame call.
type AnimationState struct {
	Orbits [OrbitCount]OrbitObject
	Growth *GrowthSequence
	Glitch GlitchTimer
}

// NewAnimationState returns the state at program start.
func NewAnimationState() *AnimationState {
	st := &AnimationState{Growth: NewGrowthSequence()}
	fib := fibTable(OrbitCount)
	for i := range st.Orbits {
		st.Orbits[i].BaseFibonacciModulus = fib[i] % orbitRadiusMod
	}
	return st
}

// fibTable returns the first n Fibonacci numbers starting 0, 1.
func fibTable(n int) []int {
	seq := make([]int, 0, max(n, 2))
	seq = append(seq, 0, 1)
	for len(seq) < n {
		seq = append(seq, seq[len(seq)-1]+seq[len(seq)-2])
	}
	return seq[:n]
}
