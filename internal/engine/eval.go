package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Evaluator scores a position from White's point of view: positive when
// White is better.
type Evaluator interface {
	Evaluate(b *board.Board) int
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(b *board.Board) int

// Evaluate calls f(b).
func (f EvaluatorFunc) Evaluate(b *board.Board) int { return f(b) }

// Piece-square tables, indexed from White's point of view with a8 first.
// Black pieces read the vertically mirrored square.
var (
	kingPST = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 5, 5, 10, 10, 5, 5, 0,
		0, 5, 10, 20, 20, 10, 5, 0,
		0, 5, 10, 20, 20, 10, 5, 0,
		0, 0, 5, 10, 10, 5, 0, 0,
		0, 5, 5, -5, -5, 0, 5, 0,
		0, 0, 5, 0, 15, 0, 10, 0,
	}

	rookPST = [64]int{
		50, 50, 50, 50, 50, 50, 50, 50,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 10, 20, 20, 10, 0, 0,
		0, 0, 10, 20, 20, 10, 0, 0,
		0, 0, 10, 20, 20, 10, 0, 0,
		0, 0, 10, 20, 20, 10, 0, 0,
		0, 0, 10, 20, 20, 10, 0, 0,
		0, 0, 0, 20, 20, 0, 0, 0,
	}

	bishopPST = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 10, 10, 0, 0, 0,
		0, 0, 10, 20, 20, 10, 0, 0,
		0, 0, 10, 20, 20, 10, 0, 0,
		0, 10, 0, 0, 0, 0, 10, 0,
		0, 30, 0, 0, 0, 0, 30, 0,
		0, 0, -10, 0, 0, -10, 0, 0,
	}

	knightPST = [64]int{
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 10, 10, 0, 0, -5,
		-5, 5, 20, 20, 20, 20, 5, -5,
		-5, 10, 20, 30, 30, 20, 10, -5,
		-5, 10, 20, 30, 30, 20, 10, -5,
		-5, 5, 20, 10, 10, 20, 5, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, -10, 0, 0, 0, 0, -10, -5,
	}

	pawnPST = [64]int{
		90, 90, 90, 90, 90, 90, 90, 90,
		30, 30, 30, 40, 40, 30, 30, 30,
		20, 20, 20, 30, 30, 30, 20, 20,
		10, 10, 10, 20, 20, 10, 10, 10,
		5, 5, 10, 20, 20, 5, 5, 5,
		0, 0, 0, 5, 5, 0, 0, 0,
		0, 0, 0, -10, -10, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	// Queens score material only.
	pieceSquareTables = [6]*[64]int{
		board.Pawn:   &pawnPST,
		board.Knight: &knightPST,
		board.Bishop: &bishopPST,
		board.Rook:   &rookPST,
		board.King:   &kingPST,
	}
)

// MaterialEvaluator is the weighted sum of piece weights and piece-square
// bonuses.
type MaterialEvaluator struct{}

// Evaluate returns the White-relative score of b.
func (MaterialEvaluator) Evaluate(b *board.Board) int {
	score := 0
	for _, p := range board.AllPieces {
		bb := b.Pieces(p)
		if bb.Empty() {
			continue
		}
		pst := pieceSquareTables[p.Type()]
		for bb != 0 {
			sq := bb.PopLSB()
			score += p.Weight()
			if pst == nil {
				continue
			}
			if p.Color() == board.White {
				score += pst[sq]
			} else {
				score -= pst[sq.Mirror()]
			}
		}
	}
	return score
}

// Evaluate scores b with the default evaluator.
func Evaluate(b *board.Board) int {
	return MaterialEvaluator{}.Evaluate(b)
}

// relativeScore turns a White-relative score into one for the side to move.
func relativeScore(b *board.Board, score int) int {
	if b.SideToMove() == board.Black {
		return -score
	}
	return score
}
