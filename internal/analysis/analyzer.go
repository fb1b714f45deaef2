package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Features is what the scene engine learns from one audio buffer.
type Features struct {
	// Amplitude is the peak absolute sample value on the int16 scale.
	Amplitude float64
	// Magnitudes holds one DFT magnitude per input sample. Both mirrored
	// halves of the spectrum are kept.
	Magnitudes []float64
}

// Analyze computes the peak amplitude and full-length magnitude spectrum of
// a mono buffer. It has no side effects and is defined for every input,
// including silence and an empty buffer.
func Analyze(samples []int16) Features {
	if len(samples) == 0 {
		return Features{}
	}

	peak := 0
	data := make([]float64, len(samples))
	for i, s := range samples {
		v := int(s)
		data[i] = float64(v)
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	bins := fft.FFTReal(data)
	mags := make([]float64, len(bins))
	for i, b := range bins {
		mags[i] = cmplx.Abs(b)
	}

	return Features{Amplitude: float64(peak), Magnitudes: mags}
}
