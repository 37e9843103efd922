package debug

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/input"
)

var specialKeys = map[common.KeyCode]string{
	common.KeySpace:     " ",
	common.KeyEsc:       "esc",
	common.KeyEnter:     "enter",
	common.KeyTab:       "tab",
	common.KeyBackspace: "backspace",
	common.KeyDelete:    "delete",
	common.KeyInsert:    "insert",
	common.KeyHome:      "home",
	common.KeyEnd:       "end",
	common.KeyPageUp:    "pgup",
	common.KeyPageDown:  "pgdown",
	common.KeyUp:        "up",
	common.KeyDown:      "down",
	common.KeyLeft:      "left",
	common.KeyRight:     "right",
}

// KeyName returns the terminal key string for k, as reported by tea.KeyMsg.String.
//
// Parameters:
//   - k: the window key code
//
// Returns:
//   - string: the terminal key name
//   - bool: false when the terminal has no equivalent key
func KeyName(k common.KeyCode) (string, bool) {
	switch {
	case k >= common.KeyA && k <= common.KeyZ, k >= common.Key0 && k <= common.Key9:
		return strings.ToLower(strings.TrimPrefix(k.String(), "KEY_")), true
	case k >= common.KeyF1 && k <= common.KeyF20:
		return strings.ToLower(strings.TrimPrefix(k.String(), "KEY_")), true
	}
	n, ok := specialKeys[k]
	return n, ok
}

// KeysFromBindings converts window key bindings to terminal keys. Release bindings and keys
// without a terminal equivalent are skipped. ctrl+c always quits.
//
// Parameters:
//   - bindings: the window bindings
//
// Returns:
//   - map[string]input.Action: terminal key to action
func KeysFromBindings(bindings []input.Binding) map[string]input.Action {
	keys := map[string]input.Action{"ctrl+c": input.QuitGame}
	for _, b := range bindings {
		if b.Release {
			continue
		}
		if name, ok := KeyName(b.Key); ok {
			keys[name] = b.Action
		}
	}
	return keys
}
