package scene

import (
	"image"
	"image/color"
	"math/big"
)

// MaxPolygonHalfSize caps the drawn half-size of the growth triangle. The
// sequence itself keeps growing exactly; only the pixel geometry is capped.
const MaxPolygonHalfSize = 1 << 20

const polygonScale = 5

// GrowthSequence is an append-only Fibonacci sequence plus the cursor that
// walks it. Terms are arbitrary precision so the sum rule never breaks.
type GrowthSequence struct {
	values []*big.Int
	index  int
}

// NewGrowthSequence returns the sequence seeded with 0, 1 and the cursor at 1.
func NewGrowthSequence() *GrowthSequence {
	return &GrowthSequence{
		values: []*big.Int{big.NewInt(0), big.NewInt(1)},
		index:  1,
	}
}

// Len returns the number of terms generated so far.
func (g *GrowthSequence) Len() int { return len(g.values) }

// Index returns the cursor position.
func (g *GrowthSequence) Index() int { return g.index }

// Term returns a copy of the n-th term.
func (g *GrowthSequence) Term(n int) *big.Int {
	return new(big.Int).Set(g.values[n])
}

func (g *GrowthSequence) extend() {
	n := len(g.values)
	next := new(big.Int).Add(g.values[n-1], g.values[n-2])
	g.values = append(g.values, next)
}

// GrowthPolygon draws the growth-mode triangle. It only moves on frames
// loud enough to cross the threshold.
type GrowthPolygon struct {
	width     int
	height    int
	base      color.RGBA
	threshold float64
}

func newGrowthPolygon(cfg Config) GrowthPolygon {
	return GrowthPolygon{
		width:     cfg.Width,
		height:    cfg.Height,
		base:      cfg.Base,
		threshold: cfg.GrowthThreshold,
	}
}

// Animate draws the next triangle and advances seq when amplitude is above
// the threshold. Quiet frames draw nothing and leave seq untouched. It
// reports whether a triangle was drawn.
func (p GrowthPolygon) Animate(s Surface, seq *GrowthSequence, amplitude float64) bool {
	if amplitude <= p.threshold {
		return false
	}

	if seq.index >= len(seq.values) {
		seq.extend()
	}
	fib := seq.values[seq.index%len(seq.values)]
	half := halfSize(fib)

	cx, cy := p.width/2, p.height/2
	points := []image.Point{
		{X: cx, Y: cy - half},
		{X: cx - half, Y: cy + half},
		{X: cx + half, Y: cy + half},
	}
	s.DrawPolygon(points, Cycle(p.base, seq.index*10), true)

	seq.index++
	return true
}

func halfSize(fib *big.Int) int {
	v := new(big.Int).Mul(fib, big.NewInt(polygonScale))
	if !v.IsInt64() || v.Int64() > MaxPolygonHalfSize {
		return MaxPolygonHalfSize
	}
	return int(v.Int64())
}
