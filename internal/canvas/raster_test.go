package canvas

import (
	"image"
	"image/color"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

// lit reports whether anything was drawn over the black background.
func lit(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R != 0 || c.G != 0 || c.B != 0
}

func countLit(img *image.RGBA) int {
	n := 0
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if lit(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestStrokeCircle(t *testing.T) {
	r := New(100, 100)
	r.DrawCircle(image.Pt(50, 50), 10, red, true)
	r.Present()
	img := r.Image()

	for _, p := range []image.Point{{60, 50}, {40, 50}, {50, 60}, {50, 40}} {
		if !lit(img, p.X, p.Y) {
			t.Errorf("expected ring pixel at %v", p)
		}
	}
	if lit(img, 50, 50) {
		t.Error("stroke circle filled its center")
	}
	if lit(img, 70, 50) {
		t.Error("stroke circle spilled past its radius")
	}
}

func TestFilledCircle(t *testing.T) {
	r := New(100, 100)
	r.DrawCircle(image.Pt(50, 50), 10, red, false)
	r.Present()
	img := r.Image()
	if img.RGBAAt(50, 50) != red || img.RGBAAt(55, 55) != red {
		t.Fatal("filled circle missing interior pixels")
	}
	if lit(img, 62, 50) {
		t.Fatal("filled circle spilled past its radius")
	}
}

func TestCircleZeroRadiusDrawsNothing(t *testing.T) {
	r := New(20, 20)
	r.DrawCircle(image.Pt(10, 10), 0, red, true)
	r.Present()
	if n := countLit(r.Image()); n != 0 {
		t.Fatalf("zero radius drew %d pixels", n)
	}
}

func TestHugeRingAroundSurfaceIsCulled(t *testing.T) {
	r := New(50, 50)
	r.DrawCircle(image.Pt(25, 25), 100000, red, true)
	r.DrawCircle(image.Pt(-5000, -5000), 10, red, true)
	r.Present()
	if n := countLit(r.Image()); n != 0 {
		t.Fatalf("invisible circles drew %d pixels", n)
	}
}

func TestRingCrossingTheEdge(t *testing.T) {
	r := New(60, 40)
	r.DrawCircle(image.Pt(0, 20), 30, red, true)
	r.Present()
	if !lit(r.Image(), 30, 20) {
		t.Fatal("visible arc of an off-center ring was not drawn")
	}
}

func TestFilledRectIsClipped(t *testing.T) {
	r := New(40, 30)
	r.DrawRect(image.Pt(30, 20), image.Pt(20, 20), red, true)
	r.Present()
	if n := countLit(r.Image()); n != 10*10 {
		t.Fatalf("clipped rect covered %d pixels, want 100", n)
	}
	if r.Image().RGBAAt(35, 25) != red {
		t.Fatalf("rect interior = %v, want %v", r.Image().RGBAAt(35, 25), red)
	}
}

func TestOutlinedRect(t *testing.T) {
	r := New(40, 40)
	r.DrawRect(image.Pt(5, 5), image.Pt(10, 10), red, false)
	r.Present()
	img := r.Image()
	for i := 5; i < 15; i++ {
		for _, p := range []image.Point{{i, 5}, {i, 14}, {5, i}, {14, i}} {
			if !lit(img, p.X, p.Y) {
				t.Fatalf("border pixel %v not drawn", p)
			}
		}
	}
	if lit(img, 10, 10) {
		t.Fatal("outline filled its interior")
	}
	if lit(img, 2, 2) || lit(img, 20, 20) {
		t.Fatal("outline drew outside the rect")
	}
}

func TestStrokeTriangleHitsVertices(t *testing.T) {
	r := New(100, 100)
	pts := []image.Point{{50, 10}, {10, 90}, {90, 90}}
	r.DrawPolygon(pts, red, true)
	r.Present()
	for _, p := range pts {
		if !lit(r.Image(), p.X, p.Y) {
			t.Errorf("vertex %v not drawn", p)
		}
	}
	if lit(r.Image(), 50, 60) {
		t.Error("stroke triangle filled its interior")
	}
}

func TestFilledTriangle(t *testing.T) {
	r := New(100, 100)
	r.DrawPolygon([]image.Point{{50, 10}, {10, 90}, {90, 90}}, red, false)
	r.Present()
	if r.Image().RGBAAt(50, 60) != red {
		t.Fatal("filled triangle missing interior")
	}
	if lit(r.Image(), 5, 5) {
		t.Fatal("filled triangle spilled outside")
	}
}

func TestHugeTriangleStaysBounded(t *testing.T) {
	r := New(80, 60)
	h := 1 << 20
	r.DrawPolygon([]image.Point{{40, 30 - h}, {40 - h, 30 + h}, {40 + h, 30 + h}}, red, true)
	r.Present()
	// every edge misses the surface entirely
	if n := countLit(r.Image()); n != 0 {
		t.Fatalf("off-screen triangle drew %d pixels", n)
	}
}

func TestClippedTriangleEdgeIsDrawn(t *testing.T) {
	r := New(80, 60)
	r.DrawPolygon([]image.Point{{40, -1000}, {-1000, 50}, {1000, 50}}, red, true)
	r.Present()
	img := r.Image()
	for _, x := range []int{0, 40, 79} {
		if !lit(img, x, 50) {
			t.Errorf("base edge missing at x=%d", x)
		}
	}
	if lit(img, 40, 30) {
		t.Error("clipped outline filled its interior")
	}
}

func TestPresentAndClear(t *testing.T) {
	r := New(10, 10)
	r.DrawRect(image.Pt(0, 0), image.Pt(10, 10), red, true)
	if countLit(r.Image()) != 0 {
		t.Fatal("drawing leaked into the presented image before Present")
	}
	r.Present()
	if countLit(r.Image()) != 100 {
		t.Fatal("Present did not publish the back buffer")
	}
	r.Clear()
	r.Present()
	if countLit(r.Image()) != 0 {
		t.Fatal("Clear did not reset the surface")
	}
}

func TestFrameIsPackedRGB(t *testing.T) {
	r := New(3, 2)
	r.DrawRect(image.Pt(1, 1), image.Pt(1, 1), color.RGBA{R: 1, G: 2, B: 3, A: 255}, true)
	r.Present()
	f := r.Frame()
	if len(f) != 3*2*3 {
		t.Fatalf("len(Frame) = %d, want 18", len(f))
	}
	off := (1*3 + 1) * 3
	if f[off] != 1 || f[off+1] != 2 || f[off+2] != 3 {
		t.Fatalf("pixel (1,1) = %v, want [1 2 3]", f[off:off+3])
	}
}
