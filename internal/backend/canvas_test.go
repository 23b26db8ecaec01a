package backend

import (
	"errors"
	"image/color"
	"testing"

	"github.com/atomicstack/fbui/internal/graphics"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func newTestCanvas() *Canvas {
	// 10x4 cells of 8x16 pixels
	return NewCanvas(80, 64, Options{MaxResolution: graphics.Size{Width: 160, Height: 128}})
}

func TestNewCanvasGrid(t *testing.T) {
	c := newTestCanvas()
	cols, rows := c.Grid()
	if cols != 10 || rows != 4 {
		t.Fatalf("expected 10x4 grid, got %dx%d", cols, rows)
	}
	if c.GlyphSize() != (graphics.Size{Width: 8, Height: 16}) {
		t.Fatalf("unexpected glyph size %v", c.GlyphSize())
	}
}

func TestScaleEnlargesCells(t *testing.T) {
	c := NewCanvas(160, 128, Options{Scale: 2})
	if c.CellSize() != (graphics.Size{Width: 16, Height: 32}) {
		t.Fatalf("unexpected cell size %v", c.CellSize())
	}
	cols, rows := c.Grid()
	if cols != 10 || rows != 4 {
		t.Fatalf("expected 10x4 grid, got %dx%d", cols, rows)
	}
}

func TestBorderedRectangleDrawsBox(t *testing.T) {
	c := newTestCanvas()
	c.DrawFilledRectangle(blue, graphics.Point{}, graphics.Size{Width: 40, Height: 48}, &red)
	lines := c.Lines()
	want := []string{"┌───┐", "│   │", "└───┘", ""}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
	if got := c.Cell(0, 0); got.Fg != red || got.Bg != blue {
		t.Fatalf("unexpected corner cell %#v", got)
	}
	if got := c.Cell(1, 1); got.Bg != blue {
		t.Fatalf("unexpected inner cell %#v", got)
	}
}

func TestSmallBorderedRectangleHighlights(t *testing.T) {
	c := newTestCanvas()
	c.DrawFilledRectangle(blue, graphics.Point{X: 8}, graphics.Size{Width: 30, Height: 20}, &red)
	for x := 1; x <= 4; x++ {
		for y := 0; y <= 1; y++ {
			if got := c.Cell(x, y); got.Bg != red {
				t.Fatalf("cell %d,%d: expected highlight, got %#v", x, y, got)
			}
		}
	}
	if got := c.Cell(5, 0); got.Bg == red {
		t.Fatalf("highlight leaked past rectangle")
	}
}

func TestThinRectangleUnderlines(t *testing.T) {
	c := newTestCanvas()
	c.DrawCharacter('a', graphics.Point{X: 16, Y: 16}, 1, blue)
	c.DrawFilledRectangle(red, graphics.Point{X: 16, Y: 29}, graphics.Size{Width: 8, Height: 3}, nil)
	got := c.Cell(2, 1)
	if !got.Underline || got.UnderlineColor != red || got.Rune != 'a' {
		t.Fatalf("expected underlined 'a', got %#v", got)
	}
}

func TestDrawCharacterClipsOutside(t *testing.T) {
	c := newTestCanvas()
	c.DrawCharacter('x', graphics.Point{X: -8}, 1, red)
	c.DrawCharacter('x', graphics.Point{X: 80}, 1, red)
	c.DrawCharacter('x', graphics.Point{Y: 64}, 1, red)
	for _, line := range c.Lines() {
		if line != "" {
			t.Fatalf("expected blank canvas, got %q", line)
		}
	}
}

func TestWideRuneOccupiesTwoCells(t *testing.T) {
	c := newTestCanvas()
	c.DrawCharacter('世', graphics.Point{}, 1, red)
	c.DrawCharacter('b', graphics.Point{X: 16}, 1, red)
	if got := c.Lines()[0]; got != "世b" {
		t.Fatalf("unexpected line %q", got)
	}
	c.DrawCharacter('a', graphics.Point{}, 1, red)
	if got := c.Lines()[0]; got != "a b" {
		t.Fatalf("expected continuation cleared, got %q", got)
	}
}

func TestSetResolution(t *testing.T) {
	c := newTestCanvas()
	if err := c.SetResolution(160, 128); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols, rows := c.Grid(); cols != 20 || rows != 8 {
		t.Fatalf("expected 20x8 grid, got %dx%d", cols, rows)
	}
	for _, bad := range []graphics.Size{{Width: 0, Height: 10}, {Width: 10, Height: -1}, {Width: 161, Height: 10}} {
		if err := c.SetResolution(bad.Width, bad.Height); !errors.Is(err, graphics.ErrUnsupportedResolution) {
			t.Fatalf("expected unsupported resolution for %v, got %v", bad, err)
		}
	}
	if c.Resolution() != (graphics.Size{Width: 160, Height: 128}) {
		t.Fatalf("rejected resolution changed canvas: %v", c.Resolution())
	}
}
