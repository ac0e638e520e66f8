package engine

import (
	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
)

// Search constants
const (
	Infinity  = 50000
	MateScore = 30000
	MaxPly    = 128
)

// Searcher performs a fail-hard negamax alpha-beta search on one board.
// The board is mutated during the search and restored before each call
// returns.
type Searcher struct {
	b       *board.Board
	gen     *movegen.Generator
	eval    Evaluator
	orderer *MoveOrderer

	nodes    uint64
	ply      int
	bestMove board.Move
}

// NewSearcher creates a searcher over b. A nil eval uses MaterialEvaluator.
func NewSearcher(b *board.Board, gen *movegen.Generator, eval Evaluator) *Searcher {
	if eval == nil {
		eval = MaterialEvaluator{}
	}
	return &Searcher{
		b:        b,
		gen:      gen,
		eval:     eval,
		orderer:  NewMoveOrderer(),
		bestMove: board.NoMove,
	}
}

// Reset clears the counters and the recorded best move.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.ply = 0
	s.bestMove = board.NoMove
}

// Nodes returns the number of nodes searched since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Ply returns the distance from the search root.
func (s *Searcher) Ply() int {
	return s.ply
}

// BestMove returns the best root move found, or NoMove if no root move
// raised alpha.
func (s *Searcher) BestMove() board.Move {
	return s.bestMove
}

// Search runs a full-window search to depth and returns the best move and
// its score for the side to move.
func (s *Searcher) Search(depth int) (board.Move, int) {
	s.Reset()
	score := s.AlphaBeta(-Infinity, Infinity, depth)
	return s.bestMove, score
}

// AlphaBeta returns the negamax score of the position within [alpha, beta].
// Checkmate scores -MateScore + ply, stalemate scores 0.
func (s *Searcher) AlphaBeta(alpha, beta, depth int) int {
	if depth <= 0 {
		return s.Quiescence(alpha, beta)
	}
	s.nodes++

	var moves board.MoveList
	var scores [board.MaxMoves]int
	s.gen.GenerateMoves(s.b, &moves, board.AllMoves)
	s.orderer.ScoreMoves(&moves, s.ply, &scores)

	legal := 0
	for i := 0; i < moves.Len(); i++ {
		PickMove(&moves, &scores, i)
		m := moves.Get(i)
		if !s.b.MakeMove(m, s.gen) {
			continue
		}
		legal++

		s.ply++
		score := -s.AlphaBeta(-beta, -alpha, depth-1)
		s.ply--
		s.b.UnmakeMove()

		if score >= beta {
			s.orderer.RecordCutoff(m, s.ply, depth)
			return beta
		}
		if score > alpha {
			alpha = score
			if s.ply == 0 {
				s.bestMove = m
			}
		}
	}

	if legal == 0 {
		if s.b.InCheck(s.gen) {
			return -MateScore + s.ply
		}
		return 0
	}
	return alpha
}

// Quiescence extends the search through captures only, using the static
// evaluation as a stand-pat floor.
func (s *Searcher) Quiescence(alpha, beta int) int {
	s.nodes++

	standPat := relativeScore(s.b, s.eval.Evaluate(s.b))
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var moves board.MoveList
	var scores [board.MaxMoves]int
	s.gen.GenerateMoves(s.b, &moves, board.Captures)
	s.orderer.ScoreMoves(&moves, s.ply, &scores)

	for i := 0; i < moves.Len(); i++ {
		PickMove(&moves, &scores, i)
		m := moves.Get(i)
		if !s.b.MakeMove(m, s.gen) {
			continue
		}

		s.ply++
		score := -s.Quiescence(-beta, -alpha)
		s.ply--
		s.b.UnmakeMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
