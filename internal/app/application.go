package app

import (
	"errors"
	"io"

	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/atomicstack/fbui/internal/logging/events"
	"github.com/atomicstack/fbui/internal/widget"
)

// KeySource blocks until the next key press is available.
type KeySource interface {
	NextKey() (key.Key, error)
}

// Application drives a stack of widgets. Keys go to the top of the stack;
// posts are broadcast to every widget on it. The application stops once the
// stack is empty.
type Application struct {
	stack    []widget.Widget
	graphics *graphics.Graphics
	keys     KeySource
}

// New starts an application with root as its only widget.
func New(root widget.Widget, g *graphics.Graphics, keys KeySource) *Application {
	events.Stack.Push(root.ID(), 1)
	return &Application{
		stack:    []widget.Widget{root},
		graphics: g,
		keys:     keys,
	}
}

// Running reports whether any widget is left.
func (a *Application) Running() bool {
	return len(a.stack) > 0
}

// Stack returns the ids on the stack, bottom first.
func (a *Application) Stack() []string {
	ids := make([]string, len(a.stack))
	for i, w := range a.stack {
		ids[i] = w.ID()
	}
	return ids
}

// Top is the widget receiving keys.
func (a *Application) Top() widget.Widget {
	return a.stack[len(a.stack)-1]
}

// Push opens w on top of the stack and redraws.
func (a *Application) Push(w widget.Widget) {
	a.stack = append(a.stack, w)
	events.Stack.Push(w.ID(), len(a.stack))
	a.Draw()
}

// Draw paints the stack bottom to top; only the top is focused.
func (a *Application) Draw() {
	if len(a.stack) == 0 {
		panic("app: draw with an empty widget stack")
	}
	top := len(a.stack) - 1
	for i, w := range a.stack {
		w.Draw(a.graphics, i == top)
	}
}

// Run draws the stack, then handles keys until the stack empties or the key
// source fails. The surface is flushed after every key. io.EOF and
// key.ErrInterrupted end the loop without error.
func (a *Application) Run() error {
	a.Draw()
	if err := a.graphics.Flush(); err != nil {
		return err
	}
	for a.Running() {
		k, err := a.keys.NextKey()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, key.ErrInterrupted) {
				events.App.Stop(err.Error())
				return nil
			}
			return err
		}
		a.HandleKey(k)
		if err := a.graphics.Flush(); err != nil {
			return err
		}
	}
	events.App.Stop("stack empty")
	return nil
}

// HandleKey processes one key and reports whether the application is still
// running.
func (a *Application) HandleKey(k key.Key) bool {
	top := a.Top()
	events.Key.Received(top.ID(), k.String())

	result := top.HandleKey(k, a.graphics)
	switch result.Kind {
	case widget.KindClose:
		a.stack = a.stack[:len(a.stack)-1]
		events.Stack.Pop(top.ID(), len(a.stack))
		if len(a.stack) == 0 {
			events.Stack.Terminate()
			return false
		}
		a.Draw()
	case widget.KindPost:
		a.broadcast(result.Topic, result.Payload)
	case widget.KindOpen:
		a.Push(result.Widget)
	}
	return a.Running()
}

func (a *Application) broadcast(topic, payload string) {
	var delivered []string
	for _, w := range a.stack {
		if widget.Subscribes(w, topic) {
			w.HandlePost(topic, payload)
			delivered = append(delivered, w.ID())
		}
	}
	events.Post.Broadcast(topic, delivered)
}
