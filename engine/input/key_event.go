package input

import (
	"cmp"
	"fmt"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
)

// AnyWindow is the window handle of bindings that match events from every window.
const AnyWindow window.Handle = 0

// KeyEvent identifies a key transition on a window. It is comparable and usable as a map key.
type KeyEvent struct {
	Window window.Handle
	Key    common.KeyCode
	State  common.KeyState
}

// Compare orders events by window, then key, then state.
//
// Parameters:
//   - other: the event to compare against
//
// Returns:
//   - int: -1, 0 or +1
func (e KeyEvent) Compare(other KeyEvent) int {
	if c := cmp.Compare(e.Window, other.Window); c != 0 {
		return c
	}
	if c := cmp.Compare(e.Key, other.Key); c != 0 {
		return c
	}
	return cmp.Compare(e.State, other.State)
}

// Wildcard returns the event with its window replaced by AnyWindow.
func (e KeyEvent) Wildcard() KeyEvent {
	e.Window = AnyWindow
	return e
}

func (e KeyEvent) String() string {
	return fmt.Sprintf("KeyEvent{window=%d key=%s state=%s}", e.Window, e.Key, e.State)
}
