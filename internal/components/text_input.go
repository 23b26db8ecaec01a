package components

import (
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/atomicstack/fbui/internal/logging/events"
	"github.com/atomicstack/fbui/internal/widget"
)

// Menu choices of a TextInput.
const (
	ChoiceSave   = "save"
	ChoiceCancel = "cancel"
)

// TextInputConfig describes a TextInput.
type TextInputConfig struct {
	ID       string
	Content  string
	Start    graphics.Point
	Size     graphics.Size
	Overflow widget.Overflow
}

// TextInput is an editable text area above a save/cancel bar. ^W moves focus
// between the two. Saving posts the text under the input's id; cancelling or
// pressing Escape closes it.
type TextInput struct {
	widget.Base
	textAreaID string
	menuID     string
	children   *widget.MultiWidget
}

// NewTextInput builds the text area and action bar inside cfg's rectangle.
func NewTextInput(cfg TextInputConfig, m graphics.Metrics) *TextInput {
	char := m.CharSize(graphics.P)
	choices := []string{ChoiceSave, ChoiceCancel}
	bar := barHeight(ButtonSize(choices, m), char)
	textHeight := max(0, cfg.Size.Height-bar)

	textAreaID := cfg.ID + "_textarea"
	menuID := cfg.ID + "_action_menu"

	area := widget.NewTextArea(widget.TextAreaConfig{
		ID:       textAreaID,
		Content:  cfg.Content,
		Editable: true,
		Start:    cfg.Start,
		Size:     graphics.Size{Width: cfg.Size.Width, Height: textHeight},
		FontSize: graphics.P,
		Overflow: cfg.Overflow,
		Padding:  char,
	}, m)
	menu := NewMenu(MenuConfig{
		ID:          menuID,
		Choices:     choices,
		Start:       graphics.Point{X: cfg.Start.X, Y: cfg.Start.Y + textHeight},
		Size:        graphics.Size{Width: cfg.Size.Width, Height: bar},
		Orientation: Horizontal,
	}, m)

	return &TextInput{
		Base:       widget.NewBase(cfg.ID, menuID),
		textAreaID: textAreaID,
		menuID:     menuID,
		children:   widget.NewMultiWidget(cfg.ID+"_multiwidget", []widget.Widget{area, menu}, 0, cfg.Size),
	}
}

// barHeight leaves room for a button with a margin, rounded up to whole
// character rows so the text area keeps a cell-aligned bottom edge.
func barHeight(button, char graphics.Size) int {
	h := button.Height + 2*ButtonPadding
	if char.Height <= 0 {
		return h
	}
	return (h + char.Height - 1) / char.Height * char.Height
}

// Value is the text content regardless of which child has focus.
func (t *TextInput) Value() string {
	return t.children.ValueFor(t.textAreaID)
}

// FocusedID is the id of the child holding focus.
func (t *TextInput) FocusedID() string {
	return t.children.FocusedID()
}

// TextArea exposes the editing area.
func (t *TextInput) TextArea() *widget.TextArea {
	w, _ := t.children.Child(t.textAreaID)
	area, _ := w.(*widget.TextArea)
	return area
}

func (t *TextInput) HandlePost(topic, payload string) {
	events.Post.Received(t.ID(), topic, payload)
}

func (t *TextInput) Draw(g *graphics.Graphics, focused bool) {
	t.children.Draw(g, focused)
}

func (t *TextInput) HandleKey(k key.Key, g *graphics.Graphics) widget.Result {
	if k.Is(key.ScanEscape) {
		return widget.Close()
	}
	result := t.children.HandleKey(k, g)
	if result.Kind != widget.KindPost || result.Topic != t.menuID {
		return result
	}
	switch result.Payload {
	case ChoiceCancel:
		return widget.Close()
	case ChoiceSave:
		events.Post.Retag(result.Topic, t.ID())
		return widget.Post(t.ID(), t.Value())
	}
	return result
}

func (t *TextInput) Dimensions() graphics.Size {
	return t.children.Dimensions()
}
