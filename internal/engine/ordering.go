package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Ordering bands, highest searched first. History scores stay below
// killerBand.
const (
	captureBand   = 1 << 22
	promotionBand = 1 << 21
	killerBand    = 1 << 20
)

// MoveOrderer ranks moves so that cutoffs come early. It only reorders;
// the searched move set never changes.
type MoveOrderer struct {
	killers [MaxPly]board.Move // last quiet cutoff per ply
	history [64][64]int        // quiet cutoffs by from/to
}

// NewMoveOrderer creates an empty orderer.
func NewMoveOrderer() *MoveOrderer {
	mo := &MoveOrderer{}
	mo.Clear()
	return mo
}

// Clear forgets everything, as for a new game.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i] = board.NoMove
	}
	mo.history = [64][64]int{}
}

// Age halves the history between searches.
func (mo *MoveOrderer) Age() {
	for from := range mo.history {
		for to := range mo.history[from] {
			mo.history[from][to] >>= 1
		}
	}
}

// captureScore is MVV-LVA: the most valuable victim first, ties broken by
// the cheapest attacker. A capturing promotion also counts the new piece.
func captureScore(m board.Move) int {
	victim := abs(m.Captured().Weight())
	attacker := abs(m.Piece().Weight())
	return victim*16 - attacker/100 + abs(m.Promoted().Weight())
}

func (mo *MoveOrderer) scoreMove(m board.Move, ply int) int {
	switch {
	case m.IsCapture():
		return captureBand + captureScore(m)
	case m.IsPromotion():
		return promotionBand + abs(m.Promoted().Weight())
	case ply < MaxPly && m == mo.killers[ply]:
		return killerBand
	}
	return mo.history[m.From()][m.To()]
}

// ScoreMoves fills scores with the ordering score of every move in the list.
func (mo *MoveOrderer) ScoreMoves(moves *board.MoveList, ply int, scores *[board.MaxMoves]int) {
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(moves.Get(i), ply)
	}
}

// PickMove swaps the best remaining move into position index.
func PickMove(moves *board.MoveList, scores *[board.MaxMoves]int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// RecordCutoff remembers a quiet move that failed high at ply with the
// given remaining depth. Captures and promotions are already ordered first.
func (mo *MoveOrderer) RecordCutoff(m board.Move, ply, depth int) {
	if m.IsCapture() || m.IsPromotion() {
		return
	}
	if ply < MaxPly {
		mo.killers[ply] = m
	}
	h := &mo.history[m.From()][m.To()]
	*h += depth * depth
	if *h >= killerBand {
		mo.Age()
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
