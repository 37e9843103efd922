package cube

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"
)

// RubiksCube is the mutable, concurrency-safe cube played by the game.
type RubiksCube interface {
	// Apply performs notation moves in order and records them in the history.
	//
	// Parameters:
	//   - moves: the moves to apply
	Apply(moves ...Move)

	// ApplyTurn performs a single layer turn and records it in the history.
	//
	// Parameters:
	//   - t: the turn to apply
	//
	// Returns:
	//   - error: ErrInvalidMove if t does not name a layer and amount
	ApplyTurn(t Turn) error

	Rotate1stColumnForward()
	Rotate1stColumnBackwards()
	Rotate2ndColumnForward()
	Rotate2ndColumnBackwards()
	Rotate3rdColumnForward()
	Rotate3rdColumnBackwards()
	Rotate1stRowForward()
	Rotate1stRowBackwards()
	Rotate2ndRowForward()
	Rotate2ndRowBackwards()
	Rotate3rdRowForward()
	Rotate3rdRowBackwards()

	// State returns a copy of the current facelet state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// SetState replaces the state after validating it and clears the history.
	//
	// Parameters:
	//   - s: the new state
	//
	// Returns:
	//   - error: the validation error if s is not a legal cube
	SetState(s State) error

	// Reset returns the cube to the solved state and clears the history.
	Reset()

	// IsSolved reports whether every face shows a single color.
	//
	// Returns:
	//   - bool: true if solved
	IsSolved() bool

	// Scramble applies n random outer face moves, never turning the same face twice in a row.
	//
	// Parameters:
	//   - rng: the random source
	//   - n: the number of moves
	//
	// Returns:
	//   - []Move: the moves applied
	Scramble(rng *rand.Rand, n int) []Move

	// History returns the moves applied since the last reset, oldest first.
	//
	// Returns:
	//   - []Move: a copy of the history
	History() []Move

	// SetHistory replaces the move history, used when restoring a save.
	//
	// Parameters:
	//   - moves: the history to keep
	SetHistory(moves []Move)

	// Undo reverts the most recent move.
	//
	// Returns:
	//   - Move: the inverse move that was applied
	//   - error: ErrNothingToUndo when the history is empty
	Undo() (Move, error)

	// RayIntersection returns the cell hit by r, or NoCell.
	//
	// Parameters:
	//   - r: the picking ray in world space
	//
	// Returns:
	//   - CellID: the nearest cell hit, NoCell on a miss
	RayIntersection(r Ray) CellID

	// Pick returns the full hit information for r.
	//
	// Parameters:
	//   - r: the picking ray in world space
	//
	// Returns:
	//   - Hit: the nearest hit
	//   - bool: false on a miss
	Pick(r Ray) (Hit, bool)

	// Geometry returns the world placement of the cells.
	//
	// Returns:
	//   - Geometry: the cube geometry
	Geometry() Geometry

	// Net renders the unfolded cube as text.
	//
	// Returns:
	//   - string: the net
	Net() string
}

type rubiksCubeImpl struct {
	mu *sync.Mutex

	state        State
	history      []Move
	historyLimit int
	geometry     Geometry
	logger       *zap.Logger
	onMove       func(Move)
}

var _ RubiksCube = &rubiksCubeImpl{}

// NewRubiksCube creates a solved cube and applies the given options.
//
// Parameters:
//   - options: variadic list of RubiksCubeBuilderOption functions to configure the cube
//
// Returns:
//   - RubiksCube: the created cube
func NewRubiksCube(options ...RubiksCubeBuilderOption) RubiksCube {
	c := &rubiksCubeImpl{
		mu:           &sync.Mutex{},
		state:        Solved(),
		historyLimit: 1024,
		geometry:     DefaultGeometry(),
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *rubiksCubeImpl) Apply(moves ...Move) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range moves {
		c.applyLocked(m)
	}
}

func (c *rubiksCubeImpl) ApplyTurn(t Turn) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidMove, t)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(MoveForTurn(t))
	return nil
}

func (c *rubiksCubeImpl) applyLocked(m Move) {
	c.state = c.state.ApplyMove(m)
	c.history = append(c.history, m)
	if c.historyLimit > 0 && len(c.history) > c.historyLimit {
		c.history = c.history[len(c.history)-c.historyLimit:]
	}
	c.logger.Debug("cube move", zap.Stringer("move", m))
	if c.onMove != nil {
		c.onMove(m)
	}
}

func (c *rubiksCubeImpl) rotate(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(MoveForTurn(t))
}

func (c *rubiksCubeImpl) Rotate1stColumnForward()   { c.rotate(Column1Forward) }
func (c *rubiksCubeImpl) Rotate1stColumnBackwards() { c.rotate(Column1Backwards) }
func (c *rubiksCubeImpl) Rotate2ndColumnForward()   { c.rotate(Column2Forward) }
func (c *rubiksCubeImpl) Rotate2ndColumnBackwards() { c.rotate(Column2Backwards) }
func (c *rubiksCubeImpl) Rotate3rdColumnForward()   { c.rotate(Column3Forward) }
func (c *rubiksCubeImpl) Rotate3rdColumnBackwards() { c.rotate(Column3Backwards) }
func (c *rubiksCubeImpl) Rotate1stRowForward()      { c.rotate(Row1Forward) }
func (c *rubiksCubeImpl) Rotate1stRowBackwards()    { c.rotate(Row1Backwards) }
func (c *rubiksCubeImpl) Rotate2ndRowForward()      { c.rotate(Row2Forward) }
func (c *rubiksCubeImpl) Rotate2ndRowBackwards()    { c.rotate(Row2Backwards) }
func (c *rubiksCubeImpl) Rotate3rdRowForward()      { c.rotate(Row3Forward) }
func (c *rubiksCubeImpl) Rotate3rdRowBackwards()    { c.rotate(Row3Backwards) }

func (c *rubiksCubeImpl) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *rubiksCubeImpl) SetState(s State) error {
	if err := Validate(s); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.history = nil
	return nil
}

func (c *rubiksCubeImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Solved()
	c.history = nil
}

func (c *rubiksCubeImpl) IsSolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.IsSolved()
}

var scrambleFaces = []byte("UDFBRL")

func (c *rubiksCubeImpl) Scramble(rng *rand.Rand, n int) []Move {
	c.mu.Lock()
	defer c.mu.Unlock()

	moves := make([]Move, 0, max(n, 0))
	var last byte
	for len(moves) < n {
		base := scrambleFaces[rng.IntN(len(scrambleFaces))]
		if base == last {
			continue
		}
		m := Move{Base: base, Amount: []int{1, -1, 2}[rng.IntN(3)]}
		c.applyLocked(m)
		moves = append(moves, m)
		last = base
	}
	c.logger.Info("cube scrambled", zap.String("moves", FormatMoves(moves)))
	return moves
}

func (c *rubiksCubeImpl) History() []Move {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Move(nil), c.history...)
}

func (c *rubiksCubeImpl) SetHistory(moves []Move) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append([]Move(nil), moves...)
}

func (c *rubiksCubeImpl) Undo() (Move, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return Move{}, ErrNothingToUndo
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	inv := last.Inverse()
	c.state = c.state.ApplyMove(inv)
	c.logger.Debug("cube undo", zap.Stringer("move", last))
	return inv, nil
}

func (c *rubiksCubeImpl) RayIntersection(r Ray) CellID {
	h, ok := c.Pick(r)
	if !ok {
		return NoCell
	}
	return h.Cell
}

func (c *rubiksCubeImpl) Pick(r Ray) (Hit, bool) {
	c.mu.Lock()
	g := c.geometry
	c.mu.Unlock()
	return g.Pick(r)
}

func (c *rubiksCubeImpl) Geometry() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geometry
}

func (c *rubiksCubeImpl) Net() string {
	return c.State().Net()
}
