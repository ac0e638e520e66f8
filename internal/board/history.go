package board

// MaxHistory is the capacity of the undo stack in plies.
const MaxHistory = 2048

// History is a fixed-capacity stack of prior game states. Exceeding the
// capacity or popping an empty stack is a caller bug and panics.
type History struct {
	states [MaxHistory]GameState
	count  int
}

// Push stores a state on top of the stack.
func (h *History) Push(s GameState) {
	if h.count == MaxHistory {
		panic("board: history overflow")
	}
	h.states[h.count] = s
	h.count++
}

// Pop removes and returns the top state.
func (h *History) Pop() GameState {
	if h.count == 0 {
		panic("board: history underflow")
	}
	h.count--
	return h.states[h.count]
}

// Len returns the number of stored states.
func (h *History) Len() int {
	return h.count
}

// Get returns the state at depth i, 0 being the oldest.
func (h *History) Get(i int) GameState {
	return h.states[i]
}

// Clear empties the stack.
func (h *History) Clear() {
	h.count = 0
}
