package scene

import (
	"image"
	"image/color"
)

// Surface is the drawing target the scene engine renders into.
// All coordinates are in surface pixels. Implementations clip anything
// outside their bounds.
type Surface interface {
	Clear()
	DrawCircle(center image.Point, radius int, c color.RGBA, strokeOnly bool)
	DrawPolygon(points []image.Point, c color.RGBA, strokeOnly bool)
	DrawRect(topLeft image.Point, size image.Point, c color.RGBA, filled bool)
	Present()
}
