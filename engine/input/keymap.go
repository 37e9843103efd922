package input

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
)

// Binding is the serialized form of one keymap entry. Bindings apply to every window and fire on
// press unless Release is set.
type Binding struct {
	Key    common.KeyCode `yaml:"key"`
	Action Action         `yaml:"action"`
	// Release binds the key release instead of the press.
	Release bool `yaml:"release,omitempty"`
}

// Event returns the key event the binding matches.
func (b Binding) Event() KeyEvent {
	state := common.KeyPressed
	if b.Release {
		state = common.KeyReleased
	}
	return KeyEvent{Window: AnyWindow, Key: b.Key, State: state}
}

// Keymap maps key events to actions. Lookups try the event's own window first and then the
// AnyWindow wildcard.
type Keymap interface {
	// Bind maps an event to an action, replacing any previous binding of the event.
	//
	// Parameters:
	//   - ev: the key event
	//   - action: the action to run
	//
	// Returns:
	//   - error: ErrUnknownAction if action is not bindable
	Bind(ev KeyEvent, action Action) error

	// Unbind removes the binding of ev.
	//
	// Parameters:
	//   - ev: the key event
	//
	// Returns:
	//   - bool: true if a binding was removed
	Unbind(ev KeyEvent) bool

	// Lookup resolves an event to its action.
	//
	// Parameters:
	//   - ev: the key event
	//
	// Returns:
	//   - Action: the bound action
	//   - bool: false if nothing is bound
	Lookup(ev KeyEvent) (Action, bool)

	// Events returns the bound events in KeyEvent.Compare order.
	//
	// Returns:
	//   - []KeyEvent: the bound events
	Events() []KeyEvent

	// Bindings exports the wildcard bindings, ordered by event.
	//
	// Returns:
	//   - []Binding: the serializable bindings
	Bindings() []Binding

	// Load replaces every wildcard binding with the given list.
	//
	// Parameters:
	//   - bindings: the bindings to install
	//
	// Returns:
	//   - error: the first invalid binding, in which case the keymap is unchanged
	Load(bindings []Binding) error

	// Len returns the number of bindings.
	Len() int
}

type keymap struct {
	mu       *sync.Mutex
	bindings map[KeyEvent]Action
}

var _ Keymap = &keymap{}

// NewKeymap creates an empty keymap.
func NewKeymap() Keymap {
	return &keymap{
		mu:       &sync.Mutex{},
		bindings: make(map[KeyEvent]Action),
	}
}

// DefaultBindings is the keymap shipped with the game.
//
// Columns turn with Q W E (forward) and A S D (backwards), rows with U I O (forward) and
// J K L (backwards).
func DefaultBindings() []Binding {
	return []Binding{
		{Key: common.KeyEsc, Action: QuitGame},
		{Key: common.KeyQ, Action: Rotate1stColumnForward},
		{Key: common.KeyW, Action: Rotate2ndColumnForward},
		{Key: common.KeyE, Action: Rotate3rdColumnForward},
		{Key: common.KeyA, Action: Rotate1stColumnBackwards},
		{Key: common.KeyS, Action: Rotate2ndColumnBackwards},
		{Key: common.KeyD, Action: Rotate3rdColumnBackwards},
		{Key: common.KeyU, Action: Rotate1stRowForward},
		{Key: common.KeyI, Action: Rotate2ndRowForward},
		{Key: common.KeyO, Action: Rotate3rdRowForward},
		{Key: common.KeyJ, Action: Rotate1stRowBackwards},
		{Key: common.KeyK, Action: Rotate2ndRowBackwards},
		{Key: common.KeyL, Action: Rotate3rdRowBackwards},
		{Key: common.KeyZ, Action: Undo},
		{Key: common.KeySpace, Action: Scramble},
		{Key: common.KeyBackspace, Action: Reset},
		{Key: common.KeyF5, Action: Save},
		{Key: common.KeyF1, Action: ToggleOverlay},
	}
}

// DefaultKeymap returns a keymap holding DefaultBindings.
func DefaultKeymap() Keymap {
	km := NewKeymap()
	// DefaultBindings only holds valid actions.
	_ = km.Load(DefaultBindings())
	return km
}

func (k *keymap) Bind(ev KeyEvent, action Action) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[ev] = action
	return nil
}

func (k *keymap) Unbind(ev KeyEvent) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.bindings[ev]; !ok {
		return false
	}
	delete(k.bindings, ev)
	return true
}

func (k *keymap) Lookup(ev KeyEvent) (Action, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if a, ok := k.bindings[ev]; ok {
		return a, true
	}
	a, ok := k.bindings[ev.Wildcard()]
	return a, ok
}

func (k *keymap) Events() []KeyEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]KeyEvent, 0, len(k.bindings))
	for ev := range k.bindings {
		out = append(out, ev)
	}
	slices.SortFunc(out, KeyEvent.Compare)
	return out
}

func (k *keymap) Bindings() []Binding {
	var out []Binding
	for _, ev := range k.Events() {
		if ev.Window != AnyWindow {
			continue
		}
		a, _ := k.Lookup(ev)
		out = append(out, Binding{Key: ev.Key, Action: a, Release: ev.State == common.KeyReleased})
	}
	return out
}

func (k *keymap) Load(bindings []Binding) error {
	next := make(map[KeyEvent]Action, len(bindings))
	for i, b := range bindings {
		if !b.Action.Valid() {
			return fmt.Errorf("binding %d: %w: %d", i, ErrUnknownAction, int(b.Action))
		}
		if _, err := b.Key.MarshalText(); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
		next[b.Event()] = b.Action
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	for ev, a := range k.bindings {
		if ev.Window != AnyWindow {
			next[ev] = a
		}
	}
	k.bindings = next
	return nil
}

func (k *keymap) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.bindings)
}
