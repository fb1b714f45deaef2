package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	tdc "github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

var background = color.RGBA{A: 255}

// strokeWidth is the pen width for outlines, in pixels.
const strokeWidth = 1.0

// clipPad keeps round caps of clipped edges off the visible border.
const clipPad = 2.0

// Raster is a double-buffered pixel surface. Shapes are rasterized into the
// back buffer with anti-aliasing and Present publishes it.
type Raster struct {
	back  *image.RGBA
	front *image.RGBA
	ctx   *tdc.Context
}

// New creates a width x height raster cleared to black.
func New(width, height int) *Raster {
	back := image.NewRGBA(image.Rect(0, 0, width, height))
	// one canvas unit per pixel, origin top-left like image.Point
	ctx := tdc.NewContext(rasterizer.FromImage(back, tdc.DPMM(1), tdc.LinearColorSpace{}))
	ctx.SetCoordSystem(tdc.CartesianIV)
	ctx.SetStrokeWidth(strokeWidth)
	ctx.SetStrokeCapper(tdc.RoundCap)
	ctx.SetStrokeJoiner(tdc.RoundJoin)

	r := &Raster{
		back:  back,
		front: image.NewRGBA(image.Rect(0, 0, width, height)),
		ctx:   ctx,
	}
	r.Clear()
	r.Present()
	return r
}

// Bounds returns the drawable area.
func (r *Raster) Bounds() image.Rectangle { return r.back.Rect }

// Clear fills the back buffer with the background color.
func (r *Raster) Clear() {
	draw.Draw(r.back, r.back.Rect, &image.Uniform{C: background}, image.Point{}, draw.Src)
}

// Present makes the back buffer visible through Image and Frame.
func (r *Raster) Present() {
	copy(r.front.Pix, r.back.Pix)
}

// Image returns the last presented image. It is overwritten by the next Present.
func (r *Raster) Image() *image.RGBA { return r.front }

// Frame returns the last presented image as packed RGB24, row-major.
func (r *Raster) Frame() []byte {
	b := r.front.Rect
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := r.front.Pix[r.front.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}

func (r *Raster) stroke(c color.RGBA) {
	r.ctx.SetFillColor(tdc.Transparent)
	r.ctx.SetStrokeColor(c)
}

func (r *Raster) fill(c color.RGBA) {
	r.ctx.SetFillColor(c)
	r.ctx.SetStrokeColor(tdc.Transparent)
}

// pixelCenter maps an integer pixel to the center of its square.
func pixelCenter(p image.Point) tdc.Point {
	return tdc.Point{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

// DrawCircle draws a 1-px ring when strokeOnly is set, a disc otherwise.
// A radius below 1 draws nothing.
func (r *Raster) DrawCircle(center image.Point, radius int, c color.RGBA, strokeOnly bool) {
	if radius < 1 || !r.circleVisible(center, radius, strokeOnly) {
		return
	}
	if strokeOnly {
		r.stroke(c)
	} else {
		r.fill(c)
	}
	at := pixelCenter(center)
	r.ctx.DrawPath(at.X, at.Y, tdc.Circle(float64(radius)))
}

// circleVisible culls circles that miss the bounds entirely, and rings
// whose inside swallows the whole surface.
func (r *Raster) circleVisible(center image.Point, radius int, strokeOnly bool) bool {
	b := r.back.Rect
	cx, cy := float64(center.X), float64(center.Y)
	nx := math.Max(float64(b.Min.X), math.Min(cx, float64(b.Max.X-1)))
	ny := math.Max(float64(b.Min.Y), math.Min(cy, float64(b.Max.Y-1)))
	rad := float64(radius)
	if math.Hypot(cx-nx, cy-ny) > rad+1 {
		return false
	}
	if !strokeOnly {
		return true
	}
	fx := math.Max(math.Abs(cx-float64(b.Min.X)), math.Abs(cx-float64(b.Max.X-1)))
	fy := math.Max(math.Abs(cy-float64(b.Min.Y)), math.Abs(cy-float64(b.Max.Y-1)))
	return math.Hypot(fx, fy) >= rad-1
}

// DrawPolygon draws the closed outline through points, or fills it when
// strokeOnly is false.
func (r *Raster) DrawPolygon(points []image.Point, c color.RGBA, strokeOnly bool) {
	if len(points) < 2 {
		return
	}
	if !strokeOnly && len(points) >= 3 {
		p := closedPath(points)
		if !p.FastBounds().Overlaps(r.view(0)) {
			return
		}
		r.fill(c)
		r.ctx.DrawPath(0, 0, p)
		return
	}

	r.stroke(c)
	r.ctx.DrawPath(0, 0, r.outline(points))
}

func closedPath(points []image.Point) *tdc.Path {
	p := &tdc.Path{}
	for i, pt := range points {
		at := pixelCenter(pt)
		if i == 0 {
			p.MoveTo(at.X, at.Y)
		} else {
			p.LineTo(at.X, at.Y)
		}
	}
	p.Close()
	return p
}

// outline returns the polygon's edges. When every vertex is near the
// surface it is one closed path; otherwise each edge is clipped on its own
// so the rasterizer never walks scanlines far outside the bounds.
func (r *Raster) outline(points []image.Point) *tdc.Path {
	view := r.view(clipPad)
	inside := true
	for _, pt := range points {
		if !view.TouchesPoint(pixelCenter(pt)) {
			inside = false
			break
		}
	}
	if inside {
		return closedPath(points)
	}

	p := &tdc.Path{}
	for i := range points {
		a := pixelCenter(points[i])
		z := pixelCenter(points[(i+1)%len(points)])
		a, z, ok := clipLine(a, z, view)
		if !ok {
			continue
		}
		p.MoveTo(a.X, a.Y)
		p.LineTo(z.X, z.Y)
	}
	return p
}

// DrawRect fills size starting at topLeft, or outlines it when filled is false.
func (r *Raster) DrawRect(topLeft image.Point, size image.Point, c color.RGBA, filled bool) {
	rect := image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}.Canon()
	if rect.Empty() || !rect.Overlaps(r.back.Rect) {
		return
	}
	if filled {
		rect = rect.Intersect(r.back.Rect)
		r.fill(c)
		r.ctx.DrawPath(float64(rect.Min.X), float64(rect.Min.Y),
			tdc.Rectangle(float64(rect.Dx()), float64(rect.Dy())))
		return
	}

	// the pen runs through the centers of the border pixels
	r.stroke(c)
	at := pixelCenter(rect.Min)
	r.ctx.DrawPath(at.X, at.Y, tdc.Rectangle(float64(rect.Dx()-1), float64(rect.Dy()-1)))
}

// view is the surface in canvas units, grown by pad on every side.
func (r *Raster) view(pad float64) tdc.Rect {
	b := r.back.Rect
	return tdc.Rect{
		X0: float64(b.Min.X) - pad,
		Y0: float64(b.Min.Y) - pad,
		X1: float64(b.Max.X) + pad,
		Y1: float64(b.Max.Y) + pad,
	}
}

// clipLine is Liang-Barsky against b.
func clipLine(a, z tdc.Point, b tdc.Rect) (tdc.Point, tdc.Point, bool) {
	d := z.Sub(a)
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-d.X, a.X - b.X0},
		{d.X, b.X1 - a.X},
		{-d.Y, a.Y - b.Y0},
		{d.Y, b.Y1 - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, z, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, z, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, z, false
			}
			t1 = math.Min(t1, t)
		}
	}

	return tdc.Point{X: a.X + t0*d.X, Y: a.Y + t0*d.Y},
		tdc.Point{X: a.X + t1*d.X, Y: a.Y + t1*d.Y}, true
}
