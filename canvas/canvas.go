// Package canvas is a simple rune-matrix surface for character based
// rendering. The ASCII exporter and the terminal front end both paint
// through it.
package canvas

import (
	"strings"

	"sld/geometry"
	"sld/layout"
)

// Canvas is a fixed-size grid of runes.
type Canvas struct {
	width  int
	height int
	cells  [][]rune
}

// New creates a canvas filled with spaces.
func New(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &Canvas{width: width, height: height, cells: cells}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.width, c.height
}

// Set places a rune, ignoring out-of-bounds writes.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = r
}

// Get returns the rune at x,y, or space when out of bounds.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return ' '
	}
	return c.cells[y][x]
}

// Text writes a string starting at x,y, clipped to the canvas.
func (c *Canvas) Text(x, y int, s string) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r)
	}
}

// DrawBox paints a box outline with Unicode borders.
func (c *Canvas) DrawBox(x, y, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y, '─')
		c.Set(x+i, y+h-1, '─')
	}
	for i := 1; i < h-1; i++ {
		c.Set(x, y+i, '│')
		c.Set(x+w-1, y+i, '│')
	}
	c.Set(x, y, '┌')
	c.Set(x+w-1, y, '┐')
	c.Set(x, y+h-1, '└')
	c.Set(x+w-1, y+h-1, '┘')
}

// DrawPath paints an orthogonal polyline. Non-orthogonal segments are
// approximated by stepping the longer axis first. Dashed paths skip
// every other cell and get an endpoint marker so auxiliary feeds read
// differently from ownership edges.
func (c *Canvas) DrawPath(points []layout.Point, dashed bool) {
	for i := 1; i < len(points); i++ {
		c.drawSegment(points[i-1], points[i], dashed)
	}
	if dashed && len(points) > 1 {
		c.Set(points[len(points)-1].X, points[len(points)-1].Y, '▼')
	}
}

func (c *Canvas) drawSegment(a, b layout.Point, dashed bool) {
	step := 0
	put := func(x, y int, r rune) {
		if !dashed || step%2 == 0 {
			c.Set(x, y, r)
		}
		step++
	}
	switch {
	case a.Y == b.Y:
		from, to := geometry.Min(a.X, b.X), geometry.Max(a.X, b.X)
		for x := from; x <= to; x++ {
			put(x, a.Y, '─')
		}
	case a.X == b.X:
		from, to := geometry.Min(a.Y, b.Y), geometry.Max(a.Y, b.Y)
		for y := from; y <= to; y++ {
			put(a.X, y, '│')
		}
	default:
		// Diagonal fallback: horizontal leg then vertical leg.
		c.drawSegment(a, layout.Point{X: b.X, Y: a.Y}, dashed)
		c.drawSegment(layout.Point{X: b.X, Y: a.Y}, b, dashed)
	}
}

// String renders the canvas with trailing spaces trimmed per line.
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		line := strings.TrimRight(string(c.cells[y]), " ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
