package scene

import (
	"image"
	"image/color"
	"math"
)

const (
	orbitRadiusMod   = 70
	orbitSpin        = 0.05
	depthTranslation = 100.0
	depthScale       = 0.5
	gravityStep      = 0.2
	gravityLimit     = 250
	bounceDamping    = 0.8
	shapeshiftDiv    = 300.0
)

// OrbitStep describes what one disc did during a frame.
type OrbitStep struct {
	Center  image.Point
	Radius  int
	Bounced bool
	Color   color.RGBA
}

// OrbitField animates the ring of discs shown before the scene switch.
// Each disc spins at its own rate around the screen center, falls under a
// constant gravity and bounces off a floor placed gravityLimit pixels above
// the bottom edge.
type OrbitField struct {
	width  int
	height int
	base   color.RGBA
}

func newOrbitField(cfg Config) OrbitField {
	return OrbitField{width: cfg.Width, height: cfg.Height, base: cfg.Base}
}

// Animate advances every disc by one frame and draws it.
func (f OrbitField) Animate(s Surface, objs *[OrbitCount]OrbitObject, amplitude float64) [OrbitCount]OrbitStep {
	var steps [OrbitCount]OrbitStep
	cx := float64(f.width / 2)
	cy := float64(f.height / 2)
	floor := float64(f.height - gravityLimit)

	for i := range objs {
		o := &objs[i]
		radius := float64(o.BaseFibonacciModulus) + amplitude/10
		o.Angle += orbitSpin * float64(i+1)

		// Higher indices sit slightly deeper; the inverse scale below
		// roughly cancels the larger orbit.
		z := depthTranslation + depthScale*float64(i)
		x := cx + z*math.Cos(o.Angle)
		y := cy + z*math.Sin(o.Angle)

		o.GravityVelocity += gravityStep
		bounced := false
		if y+o.GravityVelocity > floor {
			o.GravityVelocity = -math.Abs(o.GravityVelocity) * bounceDamping
			bounced = true
		}
		y += o.GravityVelocity

		scaled := int(radius * (1 + amplitude/shapeshiftDiv))
		transformed := int(float64(scaled) * (depthTranslation / z))

		c := Cycle(f.base, i*10)
		center := image.Pt(int(x), int(y))
		s.DrawCircle(center, transformed, c, true)

		steps[i] = OrbitStep{Center: center, Radius: transformed, Bounced: bounced, Color: c}
	}
	return steps
}
