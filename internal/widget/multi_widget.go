package widget

import (
	"fmt"

	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/atomicstack/fbui/internal/logging/events"
)

// MultiWidget owns and coordinates several widgets. Keys go to the focused
// child except ^W, which rotates focus. The focused child is drawn last.
type MultiWidget struct {
	Base
	children []Widget
	focused  int
	size     graphics.Size
}

// NewMultiWidget takes ownership of children. Subscriptions are the union of
// the children's subscriptions at construction time; duplicates are kept and
// the list is not refreshed when children are removed later.
func NewMultiWidget(id string, children []Widget, focused int, size graphics.Size) *MultiWidget {
	if len(children) > 0 && (focused < 0 || focused >= len(children)) {
		panic(fmt.Sprintf("multiwidget %s: focus %d out of range for %d children", id, focused, len(children)))
	}
	var subscriptions []string
	for _, child := range children {
		subscriptions = append(subscriptions, child.Subscriptions()...)
	}
	return &MultiWidget{
		Base:     NewBase(id, subscriptions...),
		children: children,
		focused:  focused,
		size:     size,
	}
}

// Len is the number of children still owned.
func (m *MultiWidget) Len() int {
	return len(m.children)
}

// Focused is the index of the focused child.
func (m *MultiWidget) Focused() int {
	return m.focused
}

// FocusedID is the id of the focused child, or "" when empty.
func (m *MultiWidget) FocusedID() string {
	if len(m.children) == 0 {
		return ""
	}
	return m.children[m.focused].ID()
}

// Child returns the child with the given id.
func (m *MultiWidget) Child(id string) (Widget, bool) {
	for _, child := range m.children {
		if child.ID() == id {
			return child, true
		}
	}
	return nil, false
}

// ValueFor returns the value of a specific child regardless of focus, e.g. a
// text field's content while its sibling "save" button is focused. Callers
// only ask for ids they constructed, so a miss is a bug.
func (m *MultiWidget) ValueFor(id string) string {
	child, ok := m.Child(id)
	if !ok {
		panic(fmt.Sprintf("multiwidget %s: no child with id %q", m.ID(), id))
	}
	return child.Value()
}

// FocusPrev moves focus to the previous child and redraws.
func (m *MultiWidget) FocusPrev(g *graphics.Graphics) {
	n := len(m.children)
	if n < 2 {
		return
	}
	m.setFocus((m.focused + n - 1) % n)
	m.Draw(g, true)
}

// FocusNext moves focus to the next child and redraws.
func (m *MultiWidget) FocusNext(g *graphics.Graphics) {
	n := len(m.children)
	if n < 2 {
		return
	}
	m.setFocus((m.focused + 1) % n)
	m.Draw(g, true)
}

func (m *MultiWidget) setFocus(idx int) {
	events.Focus.Rotate(m.ID(), m.focused, idx)
	m.focused = idx
}

// Value is the focused child's value.
func (m *MultiWidget) Value() string {
	return m.children[m.focused].Value()
}

// HandlePost fans the post out to every subscribed child.
func (m *MultiWidget) HandlePost(topic, payload string) {
	for _, child := range m.children {
		if Subscribes(child, topic) {
			child.HandlePost(topic, payload)
		}
	}
}

func (m *MultiWidget) Draw(g *graphics.Graphics, focused bool) {
	for i, child := range m.children {
		if i != m.focused {
			child.Draw(g, false)
		}
	}
	m.children[m.focused].Draw(g, focused)
}

func (m *MultiWidget) HandleKey(k key.Key, g *graphics.Graphics) Result {
	if k.IsRune(key.NextWidget) {
		// nested MultiWidgets all see ^W first at the outermost level
		if n := len(m.children); n > 0 {
			m.setFocus((m.focused + 1) % n)
			m.Draw(g, true)
		}
		return OK()
	}
	result := m.children[m.focused].HandleKey(k, g)
	if result.Kind != KindClose {
		return result
	}
	closed := m.children[m.focused].ID()
	m.children = append(m.children[:m.focused], m.children[m.focused+1:]...)
	events.Focus.ChildClosed(m.ID(), closed, len(m.children))
	if len(m.children) == 0 {
		return Close()
	}
	if m.focused >= len(m.children) {
		m.focused = len(m.children) - 1
	}
	m.Draw(g, true)
	return OK()
}

func (m *MultiWidget) Dimensions() graphics.Size {
	return m.size
}
