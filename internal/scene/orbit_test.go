package scene

import (
	"image"
	"math"
	"testing"
)

func TestOrbitSilenceUsesFibonacciRadii(t *testing.T) {
	cfg := DefaultConfig()
	field := newOrbitField(cfg)
	st := NewAnimationState()
	s := &recordingSurface{}

	steps := field.Animate(s, &st.Orbits, 0)

	if len(s.circles) != OrbitCount {
		t.Fatalf("expected %d circles, got %d", OrbitCount, len(s.circles))
	}
	fib := []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}
	for i, c := range s.circles {
		z := 100 + 0.5*float64(i)
		want := int(float64(fib[i]) * 100 / z)
		if c.radius != want {
			t.Errorf("disc %d radius = %d, want %d", i, c.radius, want)
		}
		if !c.stroke {
			t.Errorf("disc %d drawn filled, want stroke", i)
		}
		if c.color != Cycle(cfg.Base, i*10) {
			t.Errorf("disc %d color = %v, want %v", i, c.color, Cycle(cfg.Base, i*10))
		}
		if steps[i].Radius != c.radius {
			t.Errorf("step %d radius = %d, circle radius %d", i, steps[i].Radius, c.radius)
		}
	}
}

func TestOrbitFirstFramePosition(t *testing.T) {
	field := newOrbitField(DefaultConfig())
	st := NewAnimationState()
	steps := field.Animate(&recordingSurface{}, &st.Orbits, 0)

	x := 400 + 100*math.Cos(0.05)
	y := 300 + 100*math.Sin(0.05) + 0.2
	want := image.Pt(int(x), int(y))
	if steps[0].Center != want {
		t.Fatalf("disc 0 center = %v, want %v", steps[0].Center, want)
	}
	if st.Orbits[0].Angle != 0.05 {
		t.Fatalf("disc 0 angle = %v, want 0.05", st.Orbits[0].Angle)
	}
	if got := st.Orbits[9].Angle; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("disc 9 angle = %v, want 0.5", got)
	}
}

func TestOrbitAmplitudeGrowsRadius(t *testing.T) {
	field := newOrbitField(DefaultConfig())
	quiet := NewAnimationState()
	loud := NewAnimationState()

	q := field.Animate(&recordingSurface{}, &quiet.Orbits, 0)
	l := field.Animate(&recordingSurface{}, &loud.Orbits, 3000)

	for i := range q {
		if l[i].Radius <= q[i].Radius {
			t.Fatalf("disc %d: loud radius %d not larger than quiet %d", i, l[i].Radius, q[i].Radius)
		}
	}
	// radius = 300, scaled by 1 + 3000/300 = 11
	if l[0].Radius != 3300 {
		t.Fatalf("disc 0 loud radius = %d, want 3300", l[0].Radius)
	}
}

func TestOrbitBounceReflectsAndDamps(t *testing.T) {
	field := newOrbitField(DefaultConfig())
	st := NewAnimationState()
	s := &recordingSurface{}
	bounces := 0

	for frame := 0; frame < 600; frame++ {
		before := st.Orbits
		steps := field.Animate(s, &st.Orbits, 0)
		for i := range steps {
			pre := before[i].GravityVelocity + gravityStep
			got := st.Orbits[i].GravityVelocity
			if steps[i].Bounced {
				bounces++
				want := -math.Abs(pre) * bounceDamping
				if math.Abs(got-want) > 1e-9 {
					t.Fatalf("frame %d disc %d: velocity %v after bounce, want %v", frame, i, got, want)
				}
				if got > 0 {
					t.Fatalf("frame %d disc %d: velocity %v still points down after bounce", frame, i, got)
				}
				continue
			}
			if math.Abs(got-pre) > 1e-9 {
				t.Fatalf("frame %d disc %d: velocity %v without bounce, want %v", frame, i, got, pre)
			}
		}
		s.reset()
	}
	if bounces == 0 {
		t.Fatal("expected at least one bounce in 600 frames")
	}
}

func TestOrbitAnglesNeverReset(t *testing.T) {
	field := newOrbitField(DefaultConfig())
	st := NewAnimationState()
	for frame := 1; frame <= 1000; frame++ {
		field.Animate(&recordingSurface{}, &st.Orbits, 0)
	}
	for i, o := range st.Orbits {
		want := 1000 * 0.05 * float64(i+1)
		if math.Abs(o.Angle-want) > 1e-6 {
			t.Fatalf("disc %d angle = %v, want %v", i, o.Angle, want)
		}
	}
}

func TestNewAnimationStateBaseModulus(t *testing.T) {
	st := NewAnimationState()
	want := []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}
	for i, o := range st.Orbits {
		if o.BaseFibonacciModulus != want[i] {
			t.Errorf("disc %d base modulus = %d, want %d", i, o.BaseFibonacciModulus, want[i])
		}
	}
}

func TestOrbitRadiusReadsStoredModulus(t *testing.T) {
	field := newOrbitField(DefaultConfig())
	st := NewAnimationState()
	st.Orbits[0].BaseFibonacciModulus = 40
	s := &recordingSurface{}

	field.Animate(s, &st.Orbits, 0)

	if s.circles[0].radius != 40 {
		t.Fatalf("disc 0 radius = %d, want 40", s.circles[0].radius)
	}
}
