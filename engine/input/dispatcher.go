package input

import (
	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"go.uber.org/zap"
)

// Dispatcher turns key events into queued actions through a keymap.
type Dispatcher interface {
	// HandleKey resolves ev and queues its action. Unmapped events are ignored.
	//
	// Parameters:
	//   - ev: the key event
	//
	// Returns:
	//   - Action: the queued action, ActionNone if ev is unmapped
	HandleKey(ev KeyEvent) Action

	// Attach routes the key events of a window system into HandleKey.
	//
	// Parameters:
	//   - ws: the window system to listen to
	Attach(ws window.WindowSystem)

	// Keymap returns the keymap used for resolution.
	Keymap() Keymap

	// Queue returns the queue actions are pushed to.
	Queue() ActionQueue
}

type dispatcher struct {
	keymap Keymap
	queue  ActionQueue
	logger *zap.Logger
}

var _ Dispatcher = &dispatcher{}

// NewDispatcher creates a dispatcher with the default keymap and a fresh queue.
//
// Parameters:
//   - options: variadic list of DispatcherBuilderOption functions to configure the dispatcher
//
// Returns:
//   - Dispatcher: the created dispatcher
func NewDispatcher(options ...DispatcherBuilderOption) Dispatcher {
	d := &dispatcher{
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(d)
	}
	if d.keymap == nil {
		d.keymap = DefaultKeymap()
	}
	if d.queue == nil {
		d.queue = NewActionQueue()
	}
	return d
}

func (d *dispatcher) HandleKey(ev KeyEvent) Action {
	a, ok := d.keymap.Lookup(ev)
	if !ok {
		return ActionNone
	}
	d.logger.Debug("key action", zap.Stringer("event", ev), zap.Stringer("action", a))
	d.queue.Push(a)
	return a
}

func (d *dispatcher) Attach(ws window.WindowSystem) {
	ws.OnKey(func(w window.Window, key common.KeyCode, state common.KeyState) {
		d.HandleKey(KeyEvent{Window: w.Handle(), Key: key, State: state})
	})
}

func (d *dispatcher) Keymap() Keymap { return d.keymap }

func (d *dispatcher) Queue() ActionQueue { return d.queue }
