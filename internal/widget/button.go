package widget

import (
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
)

// Button is a rectangle with a centered label. Enter posts the label under
// the button's id.
type Button struct {
	Base
	label    string
	start    graphics.Point
	size     graphics.Size
	fontSize graphics.FontSize
}

// NewButton creates a Button at start (pixels) with the given size.
func NewButton(id, label string, start graphics.Point, size graphics.Size, fontSize graphics.FontSize) *Button {
	return &Button{
		Base:     NewBase(id),
		label:    label,
		start:    start,
		size:     size,
		fontSize: fontSize,
	}
}

// Value is the button label.
func (b *Button) Value() string {
	return b.label
}

// Origin is the top-left pixel of the button.
func (b *Button) Origin() graphics.Point {
	return b.start
}

func (b *Button) Dimensions() graphics.Size {
	return b.size
}

func (b *Button) Draw(g *graphics.Graphics, focused bool) {
	border := graphics.BorderUnfocused
	if focused {
		border = graphics.BorderFocused
	}
	g.DrawBox(graphics.Background, border, b.start, b.size)

	char := g.Metrics().CharSize(b.fontSize)
	labelWidth := len([]rune(b.label)) * char.Width
	at := graphics.Point{
		X: b.start.X + max(0, (b.size.Width-labelWidth)/2),
		Y: b.start.Y + max(0, (b.size.Height-char.Height)/2),
	}
	for _, c := range b.label {
		g.WriteChar(c, at, b.fontSize, graphics.Foreground)
		at.X += char.Width
	}
}

func (b *Button) HandleKey(k key.Key, _ *graphics.Graphics) Result {
	if k.IsEnter() {
		return Post(b.ID(), b.label)
	}
	return OK()
}
