package scene

import (
	"image/color"
	"math"
)

// Cycle derives a hue from base that drifts with offset. Shapes use their
// index (or growth step) as the offset, so no palette needs to be kept.
func Cycle(base color.RGBA, offset int) color.RGBA {
	off := float64(offset)
	r := wrap256(int(base.R) + offset*2)
	g := wrap256(int(base.G) + offset*3)
	b := wrap256(int(base.B) + offset*4)

	r = wrap256(r + int(128*math.Sin(off/10)))
	g = wrap256(g + int(128*math.Cos(off/10)))
	b = wrap256(b + int(128*math.Sin(off/15)))

	return color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255}
}

// wrap256 is a floored modulo: the result is always in [0,255].
func wrap256(v int) int {
	v %= 256
	if v < 0 {
		v += 256
	}
	return v
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
