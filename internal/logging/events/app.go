package events

import "github.com/atomicstack/fbui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

type GraphicsTracer struct{}

var Graphics = GraphicsTracer{}

// ResolutionNotFound is the one user-visible failure: it always reaches the
// log file, not only when tracing.
func (GraphicsTracer) ResolutionNotFound(width, height int, err error) {
	logging.Infof("resolution not found: %dx%d (%v)", width, height, err)
	logging.Trace("graphics.resolution.missing", map[string]interface{}{
		"width":  width,
		"height": height,
		"error":  err.Error(),
	})
}

func (GraphicsTracer) Resolution(width, height int) {
	logging.Trace("graphics.resolution", map[string]interface{}{"width": width, "height": height})
}
