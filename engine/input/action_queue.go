package input

import "sync"

// ActionQueue is a FIFO of actions produced by input callbacks and consumed by the game update.
type ActionQueue interface {
	// Push appends an action.
	//
	// Parameters:
	//   - a: the action
	Push(a Action)

	// Pop removes the oldest action.
	//
	// Returns:
	//   - Action: the oldest action
	//   - bool: false if the queue is empty
	Pop() (Action, bool)

	// Drain removes and returns every queued action, oldest first.
	//
	// Returns:
	//   - []Action: the drained actions
	Drain() []Action

	// Len returns the number of queued actions.
	Len() int
}

type actionQueue struct {
	mu    *sync.Mutex
	items []Action
}

var _ ActionQueue = &actionQueue{}

// NewActionQueue creates an empty queue.
func NewActionQueue() ActionQueue {
	return &actionQueue{mu: &sync.Mutex{}}
}

func (q *actionQueue) Push(a Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, a)
}

func (q *actionQueue) Pop() (Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return ActionNone, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}

func (q *actionQueue) Drain() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

func (q *actionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
