package termframe

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// asciiRamp runs from darkest to brightest.
const asciiRamp = " .:-=+*#%@"

const ansiReset = "\x1b[0m"

// colorMode is the terminal's color capability.
type colorMode uint8

const (
	colorOff colorMode = iota
	colorANSI16
	colorANSI256
	colorTrue
)

var (
	detectOnce sync.Once
	termColor  colorMode
)

// detectColorMode inspects the environment once per process.
func detectColorMode() colorMode {
	detectOnce.Do(func() {
		termColor = colorModeFromEnv(os.LookupEnv, runtime.GOOS)
	})
	return termColor
}

func colorModeFromEnv(lookup func(string) (string, bool), goos string) colorMode {
	if _, ok := lookup("NO_COLOR"); ok {
		return colorOff
	}
	term, _ := lookup("TERM")
	ct, _ := lookup("COLORTERM")
	term, ct = strings.ToLower(term), strings.ToLower(ct)

	switch {
	case strings.Contains(ct, "truecolor"), strings.Contains(ct, "24bit"):
		return colorTrue
	case strings.Contains(term, "256color"):
		return colorANSI256
	case term == "dumb":
		return colorOff
	case term == "":
		if goos == "windows" {
			return colorANSI16
		}
		return colorOff
	}
	return colorANSI16
}

func brightnessChar(lum uint8) byte {
	return asciiRamp[int(lum)*(len(asciiRamp)-1)/255]
}

// SGR parameter bases for the two layers of a half-block cell.
type layer struct {
	extended int // 38 or 48
	basic    int // 30 or 40
	bright   int // 90 or 100
}

var (
	fgLayer = layer{extended: 38, basic: 30, bright: 90}
	bgLayer = layer{extended: 48, basic: 40, bright: 100}
)

func (m colorMode) fg(r, g, b uint8) string { return m.escape(fgLayer, r, g, b) }
func (m colorMode) bg(r, g, b uint8) string { return m.escape(bgLayer, r, g, b) }

// escape returns the SGR sequence selecting r,g,b on layer l, or "" when
// color is off.
func (m colorMode) escape(l layer, r, g, b uint8) string {
	var params []int
	switch m {
	case colorTrue:
		params = []int{l.extended, 2, int(r), int(g), int(b)}
	case colorANSI256:
		params = []int{l.extended, 5, cube256(r, g, b)}
	case colorANSI16:
		idx := nearestANSI16(r, g, b)
		if idx < 8 {
			params = []int{l.basic + idx}
		} else {
			params = []int{l.bright + idx - 8}
		}
	default:
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\x1b[")
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(p))
	}
	sb.WriteByte('m')
	return sb.String()
}

// cube256 maps to the 6x6x6 color cube of the 256-color palette.
func cube256(r, g, b uint8) int {
	level := func(v uint8) int { return int(v) * 5 / 255 }
	return 16 + 36*level(r) + 6*level(g) + level(b)
}

func nearestANSI16(r, g, b uint8) int {
	best, bestDist := 0, 1<<31-1
	for i, c := range ansi16Palette {
		dr, dg, db := int(r)-int(c[0]), int(g)-int(c[1]), int(b)-int(c[2])
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

var ansi16Palette = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}
