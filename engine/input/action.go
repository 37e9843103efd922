package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
)

// ErrUnknownAction is returned by ParseAction for names that are not actions.
var ErrUnknownAction = errors.New("unknown action")

// Action is a game command a key can be bound to.
type Action int

const (
	ActionNone Action = iota
	QuitGame
	Rotate1stColumnForward
	Rotate2ndColumnForward
	Rotate3rdColumnForward
	Rotate1stColumnBackwards
	Rotate2ndColumnBackwards
	Rotate3rdColumnBackwards
	Rotate1stRowForward
	Rotate2ndRowForward
	Rotate3rdRowForward
	Rotate1stRowBackwards
	Rotate2ndRowBackwards
	Rotate3rdRowBackwards
	Undo
	Scramble
	Reset
	Save
	ToggleOverlay
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:               "none",
	QuitGame:                 "quit_game",
	Rotate1stColumnForward:   "rotate_1st_column_forward",
	Rotate2ndColumnForward:   "rotate_2nd_column_forward",
	Rotate3rdColumnForward:   "rotate_3rd_column_forward",
	Rotate1stColumnBackwards: "rotate_1st_column_backwards",
	Rotate2ndColumnBackwards: "rotate_2nd_column_backwards",
	Rotate3rdColumnBackwards: "rotate_3rd_column_backwards",
	Rotate1stRowForward:      "rotate_1st_row_forward",
	Rotate2ndRowForward:      "rotate_2nd_row_forward",
	Rotate3rdRowForward:      "rotate_3rd_row_forward",
	Rotate1stRowBackwards:    "rotate_1st_row_backwards",
	Rotate2ndRowBackwards:    "rotate_2nd_row_backwards",
	Rotate3rdRowBackwards:    "rotate_3rd_row_backwards",
	Undo:                     "undo",
	Scramble:                 "scramble",
	Reset:                    "reset",
	Save:                     "save",
	ToggleOverlay:            "toggle_overlay",
}

var actionTurns = map[Action]cube.Turn{
	Rotate1stColumnForward:   cube.Column1Forward,
	Rotate2ndColumnForward:   cube.Column2Forward,
	Rotate3rdColumnForward:   cube.Column3Forward,
	Rotate1stColumnBackwards: cube.Column1Backwards,
	Rotate2ndColumnBackwards: cube.Column2Backwards,
	Rotate3rdColumnBackwards: cube.Column3Backwards,
	Rotate1stRowForward:      cube.Row1Forward,
	Rotate2ndRowForward:      cube.Row2Forward,
	Rotate3rdRowForward:      cube.Row3Forward,
	Rotate1stRowBackwards:    cube.Row1Backwards,
	Rotate2ndRowBackwards:    cube.Row2Backwards,
	Rotate3rdRowBackwards:    cube.Row3Backwards,
}

// Actions returns every bindable action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := QuitGame; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

func (a Action) Valid() bool { return a > ActionNone && a < actionCount }

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Turn returns the layer turn of a rotate action.
//
// Returns:
//   - cube.Turn: the turn
//   - bool: false if a is not a rotation
func (a Action) Turn() (cube.Turn, bool) {
	t, ok := actionTurns[a]
	return t, ok
}

// ParseAction resolves an action by name. Names are case-insensitive and accept dashes for underscores.
//
// Parameters:
//   - name: the action name, e.g. "rotate_1st_row_forward"
//
// Returns:
//   - Action: the action
//   - error: ErrUnknownAction if the name does not match
func ParseAction(name string) (Action, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for a := QuitGame; a < actionCount; a++ {
		if actionNames[a] == n {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
