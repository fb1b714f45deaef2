package ui

import (
	"strings"
)

var barChars = []rune(" ▁▂▃▄▅▆▇█")

// renderSpectrum draws one block character per band.
func renderSpectrum(levels []float64) string {
	var sb strings.Builder
	top := len(barChars) - 1
	for _, v := range levels {
		idx := int(v*float64(top) + 0.5)
		sb.WriteRune(barChars[min(max(idx, 0), top)])
	}
	return spectrumStyle.Render(sb.String())
}

func progressRatio(elapsed, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return min(max(elapsed/total, 0), 1)
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
