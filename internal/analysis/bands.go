package analysis

import "math"

const defaultDecay = 0.3

// Bands folds a magnitude spectrum into logarithmically spaced bands with
// exponential smoothing. It feeds the spectrum strip in the status bar.
type Bands struct {
	numBands int
	decay    float64
	bands    []float64
	norm     []float64
}

// NewBands creates a Bands with the given band count.
func NewBands(numBands int) *Bands {
	return &Bands{
		numBands: numBands,
		decay:    defaultDecay,
		bands:    make([]float64, numBands),
		norm:     make([]float64, numBands),
	}
}

// Update folds the positive-frequency half of mags into the bands.
func (b *Bands) Update(mags []float64) {
	maxBin := len(mags) / 2
	if maxBin < 2 {
		return
	}

	for i := range b.numBands {
		lo := int(math.Pow(float64(maxBin), float64(i)/float64(b.numBands)))
		hi := int(math.Pow(float64(maxBin), float64(i+1)/float64(b.numBands)))
		if lo < 1 {
			lo = 1
		}
		if hi <= lo {
			hi = lo + 1
		}
		if hi > maxBin {
			hi = maxBin
		}

		sum := 0.0
		count := 0
		for k := lo; k < hi; k++ {
			sum += mags[k]
			count++
		}
		var bandMag float64
		if count > 0 {
			bandMag = sum / float64(count)
		}

		b.bands[i] = b.bands[i]*b.decay + bandMag*(1-b.decay)
	}
}

// Raw returns the current smoothed band magnitudes.
func (b *Bands) Raw() []float64 {
	return b.bands
}

// Normalized returns band values scaled to 0.0–1.0 relative to the current max.
func (b *Bands) Normalized() []float64 {
	maxVal := 0.01
	for _, v := range b.bands {
		if v > maxVal {
			maxVal = v
		}
	}
	for i, v := range b.bands {
		b.norm[i] = v / maxVal
	}
	return b.norm
}
