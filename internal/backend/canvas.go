// Package backend provides the pixel surface the toolkit draws on.
//
// Canvas approximates a frame buffer with a grid of character cells, each
// covering one paragraph-size glyph in pixel space. Terminal drivers in the
// screen and program subpackages present the grid and feed keys back.
package backend

import (
	"image/color"
	"strings"
	"unicode"

	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/mattn/go-runewidth"
)

const (
	DefaultGlyphWidth  = 8
	DefaultGlyphHeight = 16
)

// Box drawing runes used for rectangle borders.
const (
	boxTopLeft     = '┌'
	boxTopRight    = '┐'
	boxBottomLeft  = '└'
	boxBottomRight = '┘'
	boxHorizontal  = '─'
	boxVertical    = '│'
)

// continuation marks the cell covered by the right half of a wide rune.
const continuation rune = -1

// Cell is one character position of the canvas.
type Cell struct {
	Rune      rune
	Fg        color.RGBA
	Bg        color.RGBA
	Underline bool
	// UnderlineColor is the fill of the thin rectangle that set Underline.
	UnderlineColor color.RGBA
}

// Options configures a Canvas. Zero values select defaults.
type Options struct {
	// Glyph is the unscaled glyph size reported to widgets.
	Glyph graphics.Size
	// Scale is the font scale one cell represents.
	Scale int
	// MaxResolution bounds SetResolution; zero means unbounded.
	MaxResolution graphics.Size
}

// Canvas is a cell-grid graphics.Surface.
type Canvas struct {
	opts   Options
	cell   graphics.Size
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a canvas of width x height pixels.
func NewCanvas(width, height int, opts Options) *Canvas {
	if opts.Glyph.Width <= 0 || opts.Glyph.Height <= 0 {
		opts.Glyph = graphics.Size{Width: DefaultGlyphWidth, Height: DefaultGlyphHeight}
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	c := &Canvas{
		opts: opts,
		cell: graphics.Size{Width: opts.Glyph.Width * opts.Scale, Height: opts.Glyph.Height * opts.Scale},
	}
	c.resize(width, height)
	return c
}

// CellSize is the pixel size of one grid cell.
func (c *Canvas) CellSize() graphics.Size {
	return c.cell
}

// Resolution is the current size in pixels.
func (c *Canvas) Resolution() graphics.Size {
	return graphics.Size{Width: c.width, Height: c.height}
}

// Grid is the current size in cells.
func (c *Canvas) Grid() (cols, rows int) {
	if len(c.cells) == 0 {
		return 0, 0
	}
	return len(c.cells[0]), len(c.cells)
}

func (c *Canvas) GlyphSize() graphics.Size {
	return c.opts.Glyph
}

func (c *Canvas) SetResolution(width, height int) error {
	limit := c.opts.MaxResolution
	if width <= 0 || height <= 0 {
		return graphics.ErrUnsupportedResolution
	}
	if (limit.Width > 0 && width > limit.Width) || (limit.Height > 0 && height > limit.Height) {
		return graphics.ErrUnsupportedResolution
	}
	c.resize(width, height)
	return nil
}

func (c *Canvas) resize(width, height int) {
	c.width, c.height = width, height
	cols, rows := max(0, width/c.cell.Width), max(0, height/c.cell.Height)
	cells := make([][]Cell, rows)
	for y := range cells {
		cells[y] = make([]Cell, cols)
		for x := range cells[y] {
			cells[y][x].Rune = ' '
		}
		if y < len(c.cells) {
			copy(cells[y], c.cells[y])
		}
	}
	c.cells = cells
}

// span converts a pixel range to the inclusive cell range it touches,
// clipped to n cells. ok is false when nothing is visible.
func span(from, length, cell, n int) (lo, hi int, ok bool) {
	if length <= 0 || n == 0 {
		return 0, 0, false
	}
	lo, hi = floorDiv(from, cell), floorDiv(from+length-1, cell)
	lo, hi = max(lo, 0), min(hi, n-1)
	return lo, hi, lo <= hi
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func (c *Canvas) DrawFilledRectangle(fill color.RGBA, topLeft graphics.Point, size graphics.Size, border *color.RGBA) {
	cols, rows := c.Grid()
	x0, x1, okX := span(topLeft.X, size.Width, c.cell.Width, cols)
	y0, y1, okY := span(topLeft.Y, size.Height, c.cell.Height, rows)
	if !okX || !okY {
		return
	}

	if size.Height < c.cell.Height && y0 == y1 {
		for x := x0; x <= x1; x++ {
			cell := &c.cells[y0][x]
			cell.Underline = true
			cell.UnderlineColor = fill
		}
		return
	}

	boxed := border != nil && x1-x0 >= 2 && y1-y0 >= 2
	bg := fill
	if border != nil && !boxed {
		bg = *border
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.cells[y][x] = Cell{Rune: ' ', Fg: bg, Bg: bg}
		}
	}
	if !boxed {
		return
	}
	edge := func(x, y int, r rune) {
		c.cells[y][x].Rune = r
		c.cells[y][x].Fg = *border
	}
	for x := x0 + 1; x < x1; x++ {
		edge(x, y0, boxHorizontal)
		edge(x, y1, boxHorizontal)
	}
	for y := y0 + 1; y < y1; y++ {
		edge(x0, y, boxVertical)
		edge(x1, y, boxVertical)
	}
	edge(x0, y0, boxTopLeft)
	edge(x1, y0, boxTopRight)
	edge(x0, y1, boxBottomLeft)
	edge(x1, y1, boxBottomRight)
}

func (c *Canvas) DrawCharacter(r rune, topLeft graphics.Point, _ int, fg color.RGBA) {
	cols, rows := c.Grid()
	x, y := floorDiv(topLeft.X, c.cell.Width), floorDiv(topLeft.Y, c.cell.Height)
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	if unicode.IsControl(r) {
		r = ' '
	}
	wasWide := runewidth.RuneWidth(c.cells[y][x].Rune) == 2
	c.cells[y][x].Rune = r
	c.cells[y][x].Fg = fg
	if x+1 >= cols {
		return
	}
	next := &c.cells[y][x+1]
	switch {
	case runewidth.RuneWidth(r) == 2:
		next.Rune = continuation
	case wasWide && next.Rune == continuation:
		next.Rune = ' '
	}
}

// Cell returns the cell at (x, y).
func (c *Canvas) Cell(x, y int) Cell {
	return c.cells[y][x]
}

// Cells returns a copy of the grid, row-major.
func (c *Canvas) Cells() [][]Cell {
	out := make([][]Cell, len(c.cells))
	for y, row := range c.cells {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// IsContinuation reports whether cell is the right half of a wide rune.
func IsContinuation(cell Cell) bool {
	return cell.Rune == continuation
}

// Lines renders the grid as plain text with trailing spaces trimmed.
func (c *Canvas) Lines() []string {
	out := make([]string, len(c.cells))
	for y, row := range c.cells {
		var b strings.Builder
		for _, cell := range row {
			if IsContinuation(cell) {
				continue
			}
			b.WriteRune(cell.Rune)
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// String joins Lines with newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n") + "\n"
}

// FitCanvas sizes a canvas to a terminal of cols x rows cells and caps its
// resolution there.
func FitCanvas(cols, rows int, opts Options) *Canvas {
	c := NewCanvas(0, 0, opts)
	limit := graphics.Size{Width: max(cols, 1) * c.cell.Width, Height: max(rows, 1) * c.cell.Height}
	c.opts.MaxResolution = limit
	c.resize(limit.Width, limit.Height)
	return c
}
