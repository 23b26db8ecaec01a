// Package components builds composite widgets out of the primitives in
// package widget.
package components

import (
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/atomicstack/fbui/internal/logging/events"
	"github.com/atomicstack/fbui/internal/widget"
)

// ButtonPadding is added to both button dimensions, in pixels.
const ButtonPadding = 3

// Orientation is the axis a Menu lays its buttons along.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// MenuConfig describes a Menu.
type MenuConfig struct {
	ID          string
	Choices     []string
	Start       graphics.Point
	Size        graphics.Size
	Orientation Orientation
}

// Menu is a row or column of buttons navigated with the arrow keys along its
// orientation. Enter posts the focused label under the menu's own id. There
// is no scrolling: buttons that do not fit are packed flush and may spill
// past the menu bounds.
type Menu struct {
	widget.Base
	orientation Orientation
	buttons     *widget.MultiWidget
}

// ButtonSize is the uniform size of every button of a menu holding choices.
func ButtonSize(choices []string, m graphics.Metrics) graphics.Size {
	longest := 0
	for _, choice := range choices {
		longest = max(longest, len([]rune(choice)))
	}
	char := m.CharSize(graphics.P)
	return graphics.Size{
		Width:  longest*char.Width + ButtonPadding,
		Height: char.Height + ButtonPadding,
	}
}

// ButtonID is the id of the button for choice inside menu.
func ButtonID(menu, choice string) string {
	return menu + "_" + choice + "_button"
}

// NewMenu lays the choices out inside cfg's rectangle.
func NewMenu(cfg MenuConfig, m graphics.Metrics) *Menu {
	size := ButtonSize(cfg.Choices, m)
	positions := layout(cfg, size)

	subscriptions := []string{cfg.ID}
	buttons := make([]widget.Widget, len(cfg.Choices))
	for i, choice := range cfg.Choices {
		id := ButtonID(cfg.ID, choice)
		subscriptions = append(subscriptions, id)
		buttons[i] = widget.NewButton(id, choice, positions[i], size, graphics.P)
	}

	return &Menu{
		Base:        widget.NewBase(cfg.ID, subscriptions...),
		orientation: cfg.Orientation,
		buttons:     widget.NewMultiWidget(cfg.ID+"_multiwidget", buttons, 0, cfg.Size),
	}
}

// layout centers the buttons on the cross axis and spreads them evenly along
// the main axis, falling back to flush packing when they do not fit.
func layout(cfg MenuConfig, button graphics.Size) []graphics.Point {
	n := len(cfg.Choices)
	out := make([]graphics.Point, n)
	if n == 0 {
		return out
	}

	span, length := cfg.Size.Width, button.Width
	if cfg.Orientation == Vertical {
		span, length = cfg.Size.Height, button.Height
	}
	first, step := 0, length
	if total := length * n; total < span {
		gap := (span - total) / (n + 1)
		first, step = gap, length+gap
	}

	for i := range out {
		along := first + i*step
		if cfg.Orientation == Vertical {
			out[i] = graphics.Point{
				X: cfg.Start.X + max(0, (cfg.Size.Width-button.Width)/2),
				Y: cfg.Start.Y + along,
			}
		} else {
			out[i] = graphics.Point{
				X: cfg.Start.X + along,
				Y: cfg.Start.Y + max(0, (cfg.Size.Height-button.Height)/2),
			}
		}
	}
	return out
}

// Value is the focused label.
func (m *Menu) Value() string {
	return m.buttons.Value()
}

// Focused is the index of the focused choice.
func (m *Menu) Focused() int {
	return m.buttons.Focused()
}

// Button returns the button for choice.
func (m *Menu) Button(choice string) (*widget.Button, bool) {
	w, ok := m.buttons.Child(ButtonID(m.ID(), choice))
	if !ok {
		return nil, false
	}
	b, ok := w.(*widget.Button)
	return b, ok
}

func (m *Menu) HandlePost(topic, payload string) {
	events.Post.Received(m.ID(), topic, payload)
}

func (m *Menu) Draw(g *graphics.Graphics, focused bool) {
	m.buttons.Draw(g, focused)
}

func (m *Menu) HandleKey(k key.Key, g *graphics.Graphics) widget.Result {
	prev, next := key.ScanLeft, key.ScanRight
	if m.orientation == Vertical {
		prev, next = key.ScanUp, key.ScanDown
	}
	switch {
	case k.Is(key.ScanEscape):
		return widget.Close()
	case k.Is(prev):
		m.buttons.FocusPrev(g)
	case k.Is(next):
		m.buttons.FocusNext(g)
	case k.IsEnter():
		result := m.buttons.HandleKey(k, g)
		if result.Kind == widget.KindPost {
			events.Post.Retag(result.Topic, m.ID())
			return result.Retag(m.ID())
		}
	}
	return widget.OK()
}

func (m *Menu) Dimensions() graphics.Size {
	return m.buttons.Dimensions()
}
