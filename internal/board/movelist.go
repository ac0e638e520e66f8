package board

// MaxMoves bounds the moves in one position; the known maximum is 218.
const MaxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
// Iteration is bounded by Len; entries past it are stale.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap exchanges the moves at indices i and j.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Find returns the move with the given squares and promotion (NoPieceType for
// none), as entered in coordinate notation.
func (ml *MoveList) Find(src, dst Square, promoted PieceType) (Move, bool) {
	for i := 0; i < ml.count; i++ {
		m := ml.moves[i]
		if m.From() != src || m.To() != dst {
			continue
		}
		if m.Promoted().Type() == promoted {
			return m, true
		}
	}
	return NoMove, false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
