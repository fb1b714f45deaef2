package scene

import (
	"image"
	"image/color"
)

type circleCall struct {
	center image.Point
	radius int
	color  color.RGBA
	stroke bool
}

type rectCall struct {
	topLeft image.Point
	size    image.Point
	color   color.RGBA
	filled  bool
}

// recordingSurface captures draw calls in order.
type recordingSurface struct {
	ops      []string
	circles  []circleCall
	polygons [][]image.Point
	polyCols []color.RGBA
	rects    []rectCall
}

func (r *recordingSurface) Clear() { r.ops = append(r.ops, "clear") }

func (r *recordingSurface) DrawCircle(center image.Point, radius int, c color.RGBA, strokeOnly bool) {
	r.ops = append(r.ops, "circle")
	r.circles = append(r.circles, circleCall{center: center, radius: radius, color: c, stroke: strokeOnly})
}

func (r *recordingSurface) DrawPolygon(points []image.Point, c color.RGBA, strokeOnly bool) {
	r.ops = append(r.ops, "polygon")
	r.polygons = append(r.polygons, append([]image.Point(nil), points...))
	r.polyCols = append(r.polyCols, c)
}

func (r *recordingSurface) DrawRect(topLeft image.Point, size image.Point, c color.RGBA, filled bool) {
	r.ops = append(r.ops, "rect")
	r.rects = append(r.rects, rectCall{topLeft: topLeft, size: size, color: c, filled: filled})
}

func (r *recordingSurface) Present() { r.ops = append(r.ops, "present") }

func (r *recordingSurface) reset() { *r = recordingSurface{} }
