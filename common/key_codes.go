package common

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned by ParseKeyCode for names outside the key table.
var ErrUnknownKey = errors.New("unknown key name")

// KeyCode is a virtual key code for cross-platform input handling.
// Values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode int

const KeyUnknown KeyCode = -1

// Printable keys (ASCII).
const (
	KeySpace        KeyCode = 32
	KeyApostrophe   KeyCode = 39
	KeyComma        KeyCode = 44
	KeyMinus        KeyCode = 45
	KeyPeriod       KeyCode = 46
	KeySlash        KeyCode = 47
	Key0            KeyCode = 48
	Key1            KeyCode = 49
	Key2            KeyCode = 50
	Key3            KeyCode = 51
	Key4            KeyCode = 52
	Key5            KeyCode = 53
	Key6            KeyCode = 54
	Key7            KeyCode = 55
	Key8            KeyCode = 56
	Key9            KeyCode = 57
	KeySemicolon    KeyCode = 59
	KeyEqual        KeyCode = 61
	KeyA            KeyCode = 65
	KeyB            KeyCode = 66
	KeyC            KeyCode = 67
	KeyD            KeyCode = 68
	KeyE            KeyCode = 69
	KeyF            KeyCode = 70
	KeyG            KeyCode = 71
	KeyH            KeyCode = 72
	KeyI            KeyCode = 73
	KeyJ            KeyCode = 74
	KeyK            KeyCode = 75
	KeyL            KeyCode = 76
	KeyM            KeyCode = 77
	KeyN            KeyCode = 78
	KeyO            KeyCode = 79
	KeyP            KeyCode = 80
	KeyQ            KeyCode = 81
	KeyR            KeyCode = 82
	KeyS            KeyCode = 83
	KeyT            KeyCode = 84
	KeyU            KeyCode = 85
	KeyV            KeyCode = 86
	KeyW            KeyCode = 87
	KeyX            KeyCode = 88
	KeyY            KeyCode = 89
	KeyZ            KeyCode = 90
	KeyLeftBracket  KeyCode = 91
	KeyBackslash    KeyCode = 92
	KeyRightBracket KeyCode = 93
	KeyGraveAccent  KeyCode = 96
	KeyWorld1       KeyCode = 161
	KeyWorld2       KeyCode = 162
)

// Function and navigation keys (GLFW).
const (
	KeyEsc         KeyCode = 256
	KeyEnter       KeyCode = 257
	KeyTab         KeyCode = 258
	KeyBackspace   KeyCode = 259
	KeyInsert      KeyCode = 260
	KeyDelete      KeyCode = 261
	KeyRight       KeyCode = 262
	KeyLeft        KeyCode = 263
	KeyDown        KeyCode = 264
	KeyUp          KeyCode = 265
	KeyPageUp      KeyCode = 266
	KeyPageDown    KeyCode = 267
	KeyHome        KeyCode = 268
	KeyEnd         KeyCode = 269
	KeyCapsLock    KeyCode = 280
	KeyScrollLock  KeyCode = 281
	KeyNumLock     KeyCode = 282
	KeyPrintScreen KeyCode = 283
	KeyPause       KeyCode = 284
	KeyF1          KeyCode = 290
	KeyF2          KeyCode = 291
	KeyF3          KeyCode = 292
	KeyF4          KeyCode = 293
	KeyF5          KeyCode = 294
	KeyF6          KeyCode = 295
	KeyF7          KeyCode = 296
	KeyF8          KeyCode = 297
	KeyF9          KeyCode = 298
	KeyF10         KeyCode = 299
	KeyF11         KeyCode = 300
	KeyF12         KeyCode = 301
	KeyF20         KeyCode = 309
	KeyF25         KeyCode = 314
	KeyKP0         KeyCode = 320
	KeyKP9         KeyCode = 329
	KeyKPDecimal   KeyCode = 330
	KeyKPDivide    KeyCode = 331
	KeyKPMultiply  KeyCode = 332
	KeyKPSubtract  KeyCode = 333
	KeyKPAdd       KeyCode = 334
	KeyKPEnter     KeyCode = 335
	KeyKPEqual     KeyCode = 336
)

// Modifier keys (GLFW).
const (
	KeyLeftShift    KeyCode = 340
	KeyLeftControl  KeyCode = 341
	KeyLeftAlt      KeyCode = 342
	KeyLeftSuper    KeyCode = 343
	KeyRightShift   KeyCode = 344
	KeyRightControl KeyCode = 345
	KeyRightAlt     KeyCode = 346
	KeyRightSuper   KeyCode = 347
	KeyMenu         KeyCode = 348
	KeyLast                 = KeyMenu
)

// KeyState is the transition reported for a key event.
type KeyState int

const (
	KeyReleased KeyState = iota
	KeyPressed
	KeyRepeat
)

func (s KeyState) String() string {
	switch s {
	case KeyPressed:
		return "PRESSED"
	case KeyReleased:
		return "RELEASED"
	case KeyRepeat:
		return "REPEAT"
	}
	return fmt.Sprintf("KeyState(%d)", int(s))
}

// MouseButton values match GLFW mouse button numbering.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

var (
	keyNames  = map[KeyCode]string{}
	keyByName = map[string]KeyCode{}
)

func init() {
	named := map[KeyCode]string{
		KeySpace: "SPACE", KeyApostrophe: "APOSTROPHE", KeyComma: "COMMA", KeyMinus: "MINUS",
		KeyPeriod: "PERIOD", KeySlash: "SLASH", KeySemicolon: "SEMICOLON", KeyEqual: "EQUAL",
		KeyLeftBracket: "LEFT_BRACKET", KeyBackslash: "BACKSLASH", KeyRightBracket: "RIGHT_BRACKET",
		KeyGraveAccent: "GRAVE_ACCENT", KeyWorld1: "WORLD_1", KeyWorld2: "WORLD_2",
		KeyEsc: "ESCAPE", KeyEnter: "ENTER", KeyTab: "TAB", KeyBackspace: "BACKSPACE",
		KeyInsert: "INSERT", KeyDelete: "DELETE", KeyRight: "RIGHT", KeyLeft: "LEFT",
		KeyDown: "DOWN", KeyUp: "UP", KeyPageUp: "PAGE_UP", KeyPageDown: "PAGE_DOWN",
		KeyHome: "HOME", KeyEnd: "END", KeyCapsLock: "CAPS_LOCK", KeyScrollLock: "SCROLL_LOCK",
		KeyNumLock: "NUM_LOCK", KeyPrintScreen: "PRINT_SCREEN", KeyPause: "PAUSE",
		KeyKPDecimal: "KP_DECIMAL", KeyKPDivide: "KP_DIVIDE", KeyKPMultiply: "KP_MULTIPLY",
		KeyKPSubtract: "KP_SUBTRACT", KeyKPAdd: "KP_ADD", KeyKPEnter: "KP_ENTER",
		KeyKPEqual: "KP_EQUAL", KeyLeftShift: "LEFT_SHIFT", KeyLeftControl: "LEFT_CONTROL",
		KeyLeftAlt: "LEFT_ALT", KeyLeftSuper: "LEFT_SUPER", KeyRightShift: "RIGHT_SHIFT",
		KeyRightControl: "RIGHT_CONTROL", KeyRightAlt: "RIGHT_ALT", KeyRightSuper: "RIGHT_SUPER",
		KeyMenu: "MENU",
	}
	for k := Key0; k <= Key9; k++ {
		named[k] = string(rune('0' + k - Key0))
	}
	for k := KeyA; k <= KeyZ; k++ {
		named[k] = string(rune('A' + k - KeyA))
	}
	for k := KeyF1; k <= KeyF25; k++ {
		named[k] = fmt.Sprintf("F%d", k-KeyF1+1)
	}
	for k := KeyKP0; k <= KeyKP9; k++ {
		named[k] = fmt.Sprintf("KP_%d", k-KeyKP0)
	}
	for k, n := range named {
		keyNames[k] = "KEY_" + n
		keyByName["KEY_"+n] = k
	}
}

// String returns the GLFW-style key name, e.g. "KEY_SPACE".
func (k KeyCode) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Undefined key!"
}

// ParseKeyCode resolves a key name such as "KEY_SPACE", "space" or "a" to its KeyCode.
//
// Parameters:
//   - name: the key name, case-insensitive, with or without the KEY_ prefix
//
// Returns:
//   - KeyCode: the resolved key code
//   - error: ErrUnknownKey if the name is not in the table
func ParseKeyCode(name string) (KeyCode, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(n, "KEY_") {
		n = "KEY_" + n
	}
	if k, ok := keyByName[n]; ok {
		return k, nil
	}
	return KeyUnknown, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// MarshalText encodes the key as its table name so configs stay readable.
func (k KeyCode) MarshalText() ([]byte, error) {
	if _, ok := keyNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a key table name.
func (k *KeyCode) UnmarshalText(b []byte) error {
	parsed, err := ParseKeyCode(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
