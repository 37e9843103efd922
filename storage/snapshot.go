package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/fxamacker/cbor/v2"
)

// snapshotVersion is bumped whenever snapshotWire changes incompatibly.
const snapshotVersion = 1

// ErrCorruptSave is returned when a stored snapshot cannot be decoded.
var ErrCorruptSave = errors.New("corrupt save")

// Snapshot is a saved game.
type Snapshot struct {
	State   cube.State
	History []cube.Move
	Elapsed time.Duration
}

type snapshotWire struct {
	Version   uint   `cbor:"1,keyasint"`
	State     []byte `cbor:"2,keyasint"`
	Moves     string `cbor:"3,keyasint"`
	ElapsedMs int64  `cbor:"4,keyasint"`
}

// encMode uses Core Deterministic Encoding, so equal snapshots encode to identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("storage: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("storage: CBOR decoder initialization failed: " + err.Error())
	}
}

// EncodeSnapshot serializes s to CBOR.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	state := make([]byte, cube.NumFacelets)
	for i, st := range s.State {
		state[i] = byte(st)
	}
	return encMode.Marshal(snapshotWire{
		Version:   snapshotVersion,
		State:     state,
		Moves:     cube.FormatMoves(s.History),
		ElapsedMs: s.Elapsed.Milliseconds(),
	})
}

// DecodeSnapshot parses a CBOR snapshot and validates the cube state.
//
// Returns:
//   - Snapshot: the decoded snapshot
//   - error: ErrCorruptSave wrapping the cause
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var w snapshotWire
	if err := decMode.Unmarshal(data, &w); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	if w.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptSave, w.Version)
	}
	if len(w.State) != cube.NumFacelets {
		return Snapshot{}, fmt.Errorf("%w: state has %d facelets", ErrCorruptSave, len(w.State))
	}

	var s Snapshot
	for i, b := range w.State {
		s.State[i] = cube.Sticker(b)
	}
	if err := cube.Validate(s.State); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	moves, err := cube.ParseMoves(w.Moves)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	s.History = moves
	s.Elapsed = time.Duration(w.ElapsedMs) * time.Millisecond
	return s, nil
}
