package termframe

import (
	"strings"
)

// Renderer converts raw RGB24 frames from the raster surface into a
// terminal string. It supports two modes:
//   - Color (half-block): "▀" with fg/bg colors packs 2 pixel rows per terminal row.
//   - ASCII (no color): each cell maps to a brightness character.
//
// Downsampling keeps the brightest pixel of every cell block, so 1-px
// strokes on a dark background survive large reductions.
type Renderer struct {
	mode colorMode
	sb   strings.Builder // reusable builder to reduce allocations
}

// NewRenderer creates a renderer using the current terminal's color capabilities.
func NewRenderer() *Renderer {
	return &Renderer{mode: detectColorMode()}
}

// Render converts an RGB24 frame buffer into a terminal string.
//
// frameW, frameH: dimensions of the raw frame (in pixels).
// outW, outH: target terminal cell dimensions.
func (r *Renderer) Render(frame []byte, frameW, frameH, outW, outH int) string {
	if len(frame) < frameW*frameH*3 || frameW <= 0 || frameH <= 0 || outW <= 0 || outH <= 0 {
		return ""
	}

	r.sb.Reset()
	// Worst case ~40 bytes per cell (two truecolor escapes) + newlines.
	r.sb.Grow(outW * outH * 40)

	if r.mode == colorOff {
		r.renderASCII(frame, frameW, frameH, outW, outH)
	} else {
		r.renderHalfBlock(frame, frameW, frameH, outW, outH)
	}

	return r.sb.String()
}

func (r *Renderer) renderHalfBlock(frame []byte, frameW, frameH, outW, outH int) {
	pixelRows := outH * 2

	var lastFg, lastBg string

	for row := 0; row < outH; row++ {
		top := row * 2
		bot := top + 1
		for col := 0; col < outW; col++ {
			x0, x1 := span(col, outW, frameW)

			ty0, ty1 := span(top, pixelRows, frameH)
			tr, tg, tb := poolPixel(frame, frameW, x0, x1, ty0, ty1)
			by0, by1 := span(bot, pixelRows, frameH)
			br, bg, bb := poolPixel(frame, frameW, x0, x1, by0, by1)

			fg := r.mode.fg(tr, tg, tb)
			bgc := r.mode.bg(br, bg, bb)

			if fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bgc != lastBg {
				r.sb.WriteString(bgc)
				lastBg = bgc
			}
			r.sb.WriteString("▀")
		}

		r.sb.WriteString(ansiReset)
		lastFg = ""
		lastBg = ""
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

func (r *Renderer) renderASCII(frame []byte, frameW, frameH, outW, outH int) {
	for row := 0; row < outH; row++ {
		y0, y1 := span(row, outH, frameH)
		for col := 0; col < outW; col++ {
			x0, x1 := span(col, outW, frameW)
			pr, pg, pb := poolPixel(frame, frameW, x0, x1, y0, y1)
			r.sb.WriteByte(brightnessChar(luminance(pr, pg, pb)))
		}
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// span maps output cell i of n onto the source pixel range [lo, hi) of size.
// The range is never empty.
func span(i, n, size int) (int, int) {
	lo := i * size / n
	hi := (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if hi > size {
		hi = size
	}
	return lo, hi
}

// poolPixel returns the brightest pixel in the block [x0,x1) x [y0,y1).
func poolPixel(frame []byte, stride, x0, x1, y0, y1 int) (uint8, uint8, uint8) {
	var br, bg, bb, best uint8
	found := false
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			off := (y*stride + x) * 3
			if off+2 >= len(frame) {
				continue
			}
			pr, pg, pb := frame[off], frame[off+1], frame[off+2]
			if lum := luminance(pr, pg, pb); !found || lum > best {
				br, bg, bb, best = pr, pg, pb, lum
				found = true
			}
		}
	}
	return br, bg, bb
}

// luminance computes perceived brightness (ITU-R BT.601).
func luminance(r, g, b uint8) uint8 {
	// 0.299*R + 0.587*G + 0.114*B using integer math.
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

// FitCells returns the largest terminal cell area, within termW x termH,
// that shows a frameW x frameH frame without distortion. A terminal cell
// is treated as one pixel wide and two pixels tall.
func FitCells(termW, termH, frameW, frameH int) (outW, outH int) {
	if frameW <= 0 || frameH <= 0 || termW <= 0 || termH <= 0 {
		return 0, 0
	}

	aspectSrc := float64(frameW) / float64(frameH)
	aspectTerm := float64(termW) / (float64(termH) * 2)

	if aspectSrc > aspectTerm {
		// Source is wider: fit to width, reduce height.
		outW = termW
		outH = int(float64(termW)/aspectSrc/2 + 0.5)
	} else {
		// Source is taller: fit to height, reduce width.
		outH = termH
		outW = int(float64(termH) * 2 * aspectSrc)
	}

	if outW < 4 {
		outW = 4
	}
	if outH < 2 {
		outH = 2
	}
	return outW, outH
}
