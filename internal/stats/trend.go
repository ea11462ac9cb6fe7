package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultTrendHeight = 8
	minTrendWidth      = 16
	trendGutterWidth   = 10
	fallbackTermWidth  = 80
)

// Trend is a braille line plot of attempt times with a moving average
// overlaid. Both lines share one scale so they can be compared directly;
// the average is drawn dashed.
type Trend struct {
	Values  []float64
	Average []float64
	Width   int
	Height  int
}

// Render writes the plot to w.
func (t Trend) Render(w io.Writer) error {
	if len(t.Values) == 0 {
		_, err := fmt.Fprintln(w, "No attempts yet.")
		return err
	}

	height := t.Height
	if height <= 0 {
		height = defaultTrendHeight
	}
	width := t.Width
	if width <= 0 {
		width = TrendWidthFor(terminalWidth())
	}
	if width < minTrendWidth {
		width = minTrendWidth
	}

	lo, hi := trendRange(t.Values, t.Average)
	if math.Abs(hi-lo) < 1e-9 {
		lo--
		hi++
	}

	solid := newCanvas(width, height)
	solid.plot(t.Values, lo, hi, everyDot)
	dashed := newCanvas(width, height)
	dashed.plot(t.Average, lo, hi, dashPattern)

	labels := [3]string{formatSeconds(hi), formatSeconds((hi + lo) / 2), formatSeconds(lo)}
	gutter := 0
	for _, label := range labels {
		if n := len(label); n > gutter {
			gutter = n
		}
	}

	for y := 0; y < height; y++ {
		label := ""
		if y == 0 {
			label = labels[0]
		} else if y == height-1 {
			label = labels[2]
		} else if y == height/2 {
			label = labels[1]
		}
		var row strings.Builder
		fmt.Fprintf(&row, "%*s │ ", gutter, label)
		for x := 0; x < width; x++ {
			row.WriteRune(brailleRune(solid.mask(x, y) | dashed.mask(x, y)))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	legend := fmt.Sprintf("%*s   %c time per attempt  %c moving average",
		gutter, "", brailleRune(0xff), brailleRune(0x09))
	_, err := fmt.Fprintln(w, legend)
	return err
}

// TrendWidthFor computes a plot width that fits within the total available
// terminal width, reserving room for the axis gutter.
func TrendWidthFor(totalWidth int) int {
	width := totalWidth - trendGutterWidth
	if width < minTrendWidth {
		width = minTrendWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.1fs", v)
}

func trendRange(series ...[]float64) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, values := range series {
		for _, v := range values {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if math.IsInf(lo, 1) {
		lo = 0
	}
	if math.IsInf(hi, -1) {
		hi = 0
	}
	return lo, hi
}

func everyDot(int) bool { return true }

func dashPattern(x int) bool {
	if x < 0 {
		x = -x
	}
	return x%6 < 3
}

// canvas is a braille dot grid. Each cell covers 2x4 dots.
type canvas struct {
	width  int
	height int
	cells  []uint8
}

// dotMasks holds the braille dot bit for each (y%4, x%2) position.
var dotMasks = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: width, height: height, cells: make([]uint8, width*height)}
}

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.width || cy >= c.height {
		return
	}
	c.cells[cy*c.width+cx] |= dotMasks[y%4][x%2]
}

func (c *canvas) mask(cx, cy int) uint8 {
	if cx < 0 || cy < 0 || cx >= c.width || cy >= c.height {
		return 0
	}
	return c.cells[cy*c.width+cx]
}

// plot draws values as a connected line, mapping point i across the full
// dot width and v onto the shared [lo, hi] scale. keep filters dots by x
// position to produce dashed lines.
func (c *canvas) plot(values []float64, lo, hi float64, keep func(int) bool) {
	n := len(values)
	if n == 0 {
		return
	}
	dotsW := c.width * 2
	dotsH := c.height * 4
	xFor := func(i int) int {
		if n == 1 {
			return 0
		}
		return i * (dotsW - 1) / (n - 1)
	}
	yFor := func(v float64) int {
		pos := (v - lo) / (hi - lo)
		y := int(math.Round((1 - pos) * float64(dotsH-1)))
		if y < 0 {
			y = 0
		}
		if y >= dotsH {
			y = dotsH - 1
		}
		return y
	}

	prevX, prevY := -1, -1
	for i, v := range values {
		x, y := xFor(i), yFor(v)
		if prevX >= 0 {
			c.line(prevX, prevY, x, y, keep)
		} else if keep(x) {
			c.set(x, y)
		}
		prevX, prevY = x, y
	}
}

// line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int, keep func(int) bool) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if keep(x0) {
			c.set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

func brailleRune(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
