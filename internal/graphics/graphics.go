package graphics

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/atomicstack/fbui/internal/logging/events"
	"github.com/atomicstack/fbui/internal/theme"
)

// ErrUnsupportedResolution is returned by surfaces that cannot switch to the
// requested mode.
var ErrUnsupportedResolution = errors.New("unsupported resolution")

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// Add offsets p by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a pixel extent.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Surface is the raster backend the toolkit draws on. It owns glyph data,
// scaling and pixel writes.
type Surface interface {
	DrawFilledRectangle(fill color.RGBA, topLeft Point, size Size, border *color.RGBA)
	DrawCharacter(c rune, topLeft Point, scale int, fg color.RGBA)
	SetResolution(width, height int) error
	// GlyphSize is the unscaled size of one character cell.
	GlyphSize() Size
}

// Flusher is implemented by surfaces that buffer output until flushed.
type Flusher interface {
	Flush() error
}

// ColorType names a theme color slot.
type ColorType int

const (
	Foreground ColorType = iota
	Background
	Cursor
	BorderUnfocused
	BorderFocused
)

// FontSize names a theme font scale.
type FontSize int

const (
	H1 FontSize = iota
	H2
	P
)

// Metrics describes character geometry for layout.
type Metrics struct {
	Glyph Size
	Sizes theme.FontSizes
}

// Scale returns the integer scale factor for a font size.
func (m Metrics) Scale(size FontSize) int {
	switch size {
	case H1:
		return m.Sizes.H1
	case H2:
		return m.Sizes.H2
	case P:
		return m.Sizes.P
	}
	panic(fmt.Sprintf("unknown font size %d", int(size)))
}

// CharSize returns the pixel size of one character at the given font size.
func (m Metrics) CharSize(size FontSize) Size {
	scale := m.Scale(size)
	return Size{Width: m.Glyph.Width * scale, Height: m.Glyph.Height * scale}
}

// Graphics is handed to widgets instead of the raw surface so that theme
// colors and font scaling are resolved in one place.
type Graphics struct {
	surface Surface
	theme   theme.Theme
	// DebugBorders forces a border on every rectangle.
	DebugBorders bool
}

// New wraps a surface with a theme.
func New(surface Surface, th theme.Theme) *Graphics {
	return &Graphics{surface: surface, theme: th}
}

// Theme exposes the active theme.
func (g *Graphics) Theme() theme.Theme {
	return g.theme
}

// Metrics reports the character geometry of the active surface and theme.
func (g *Graphics) Metrics() Metrics {
	return Metrics{Glyph: g.surface.GlyphSize(), Sizes: g.theme.FontSizes}
}

// Color resolves a slot against the theme.
func (g *Graphics) Color(c ColorType) color.RGBA {
	colors := g.theme.Colors
	switch c {
	case Foreground:
		return colors.Foreground
	case Background:
		return colors.Background
	case Cursor:
		return colors.Cursor
	case BorderUnfocused:
		return colors.BorderUnfocused
	case BorderFocused:
		return colors.BorderFocused
	}
	panic(fmt.Sprintf("unknown color slot %d", int(c)))
}

// WriteChar draws c with its top-left corner at the given pixel.
func (g *Graphics) WriteChar(c rune, topLeft Point, size FontSize, fg ColorType) {
	g.surface.DrawCharacter(c, topLeft, g.Metrics().Scale(size), g.Color(fg))
}

// DrawRect fills a rectangle without a border (unless debug borders are on).
func (g *Graphics) DrawRect(fill ColorType, topLeft Point, size Size) {
	var border *color.RGBA
	if g.DebugBorders {
		white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		border = &white
	}
	g.surface.DrawFilledRectangle(g.Color(fill), topLeft, size, border)
}

// DrawBox fills a rectangle and outlines it.
func (g *Graphics) DrawBox(fill, border ColorType, topLeft Point, size Size) {
	b := g.Color(border)
	g.surface.DrawFilledRectangle(g.Color(fill), topLeft, size, &b)
}

// SetResolution asks the surface to switch modes. Unsupported modes are
// logged and the previous mode is kept.
func (g *Graphics) SetResolution(width, height int) {
	if err := g.surface.SetResolution(width, height); err != nil {
		events.Graphics.ResolutionNotFound(width, height, err)
		return
	}
	events.Graphics.Resolution(width, height)
}

// Flush pushes buffered output to the display, when the surface buffers.
func (g *Graphics) Flush() error {
	if f, ok := g.surface.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
