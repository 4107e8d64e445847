package ui

import (
	hook "github.com/robotn/gohook"
	"github.com/vedantwpatil/frame-snap/internal/session"
	"go.uber.org/zap"
)

// Binding maps a global key combination to an intent.
type Binding struct {
	Keys   []string
	Intent session.Intent
}

// DefaultBindings work while another window has focus. Choosing a file is
// left to the menu because it needs the terminal.
var DefaultBindings = []Binding{
	{Keys: []string{"m", "ctrl", "shift"}, Intent: session.IntentMute},
	{Keys: []string{"s", "ctrl", "shift"}, Intent: session.IntentStop},
	{Keys: []string{"q", "ctrl", "shift"}, Intent: session.IntentExit},
}

// Hotkeys listens for global key combinations through gohook.
type Hotkeys struct {
	bindings []Binding
	dispatch func(session.Intent)
	logger   *zap.Logger
}

func NewHotkeys(bindings []Binding, dispatch func(session.Intent), logger *zap.Logger) *Hotkeys {
	return &Hotkeys{bindings: bindings, dispatch: dispatch, logger: logger}
}

// Run registers the bindings and blocks until Stop is called.
func (h *Hotkeys) Run() {
	for _, b := range h.bindings {
		intent := b.Intent
		hook.Register(hook.KeyDown, b.Keys, func(hook.Event) {
			h.logger.Debug("hotkey pressed", zap.Stringer("intent", intent))
			// Keep the hook loop free while the controller works.
			go h.dispatch(intent)
		})
	}

	evChan := hook.Start()
	h.logger.Info("hotkey listener started", zap.Int("bindings", len(h.bindings)))

	<-hook.Process(evChan)
	h.logger.Info("hotkey listener stopped")
}

func (h *Hotkeys) Stop() {
	hook.End()
}
