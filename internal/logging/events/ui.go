package events

import "github.com/atomicstack/fbui/internal/logging"

type StackTracer struct{}

type FocusTracer struct{}

type PostTracer struct{}

type KeyTracer struct{}

var (
	Stack = StackTracer{}
	Focus = FocusTracer{}
	Post  = PostTracer{}
	Key   = KeyTracer{}
)

func (StackTracer) Push(id string, depth int) {
	logging.Trace("stack.push", map[string]interface{}{"id": id, "depth": depth})
}

func (StackTracer) Pop(id string, depth int) {
	logging.Trace("stack.pop", map[string]interface{}{"id": id, "depth": depth})
}

func (StackTracer) Terminate() {
	logging.Trace("stack.terminate", nil)
}

func (FocusTracer) Rotate(container string, from, to int) {
	logging.Trace("focus.rotate", map[string]interface{}{"container": container, "from": from, "to": to})
}

func (FocusTracer) ChildClosed(container, child string, remaining int) {
	logging.Trace("focus.child.closed", map[string]interface{}{
		"container": container,
		"child":     child,
		"remaining": remaining,
	})
}

func (PostTracer) Broadcast(topic string, delivered []string) {
	logging.Trace("post.broadcast", map[string]interface{}{"topic": topic, "delivered": delivered})
}

func (PostTracer) Retag(from, to string) {
	logging.Trace("post.retag", map[string]interface{}{"from": from, "to": to})
}

func (KeyTracer) Received(target, key string) {
	logging.Trace("key.received", map[string]interface{}{"target": target, "key": key})
}

func (PostTracer) Received(widget, topic, payload string) {
	logging.Trace("post.received", map[string]interface{}{"widget": widget, "topic": topic, "payload": payload})
}
