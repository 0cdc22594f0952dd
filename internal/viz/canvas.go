package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a braille pixel grid. Its size in sub-pixels is
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPath scales the polyline (xs[i], ys[i]) to fill the canvas and draws
// it. The y axis points up. Returns the pixel position of each vertex.
func (c *Canvas) DrawPath(xs, ys []float64) [][2]int {
	px := c.pathPixels(xs, ys)
	c.drawPixels(px)
	return px
}

func (c *Canvas) pathPixels(xs, ys []float64) [][2]int {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return nil
	}
	xmin, xmax := bounds(xs[:n])
	ymin, ymax := bounds(ys[:n])
	pw, ph := c.Width*2-1, c.Height*4-1

	px := make([][2]int, n)
	for i := 0; i < n; i++ {
		px[i] = [2]int{
			int(math.Round(scale(xs[i], xmin, xmax) * float64(pw))),
			int(math.Round((1 - scale(ys[i], ymin, ymax)) * float64(ph))),
		}
	}
	return px
}

func (c *Canvas) drawPixels(px [][2]int) {
	if len(px) == 1 {
		c.Set(px[0][0], px[0][1])
		return
	}
	for i := 1; i < len(px); i++ {
		c.DrawLine(px[i-1][0], px[i-1][1], px[i][0], px[i][1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// scale maps v from [lo, hi] to [0, 1]; a degenerate range maps to 0.5.
func scale(v, lo, hi float64) float64 {
	if hi == lo || math.IsNaN(v) {
		return 0.5
	}
	return math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
