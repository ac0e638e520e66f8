package engine

import (
	"fmt"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
)

// DefaultDepth is used when a search has neither a depth nor a clock.
const DefaultDepth = 5

// SearchInfo contains information about one finished iteration.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	BestMove board.Move
}

// Result is the outcome of a search. Move is NoMove when the side to move
// has no legal moves; Score then tells mate from stalemate.
type Result struct {
	Move    board.Move
	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
}

// Engine drives iterative deepening over a Searcher.
type Engine struct {
	gen     *movegen.Generator
	eval    Evaluator
	orderer *MoveOrderer
	tm      *TimeManager

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine sharing the given move generator.
func NewEngine(gen *movegen.Generator) *Engine {
	return &Engine{
		gen:     gen,
		eval:    MaterialEvaluator{},
		orderer: NewMoveOrderer(),
		tm:      NewTimeManager(),
	}
}

// SetEvaluator replaces the evaluation function.
func (e *Engine) SetEvaluator(ev Evaluator) {
	e.eval = ev
}

// Search finds the best move for b at a fixed depth.
func (e *Engine) Search(b *board.Board, depth int) Result {
	return e.SearchWithLimits(b, SearchLimits{Depth: depth})
}

// SearchWithLimits runs iterative deepening until the depth limit is
// reached, a mate is found, or the time budget would be exceeded.
// b is restored before returning.
func (e *Engine) SearchWithLimits(b *board.Board, limits SearchLimits) Result {
	e.tm.Init(limits, b.SideToMove(), b.Ply())
	e.orderer.Age()

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = DefaultDepth
		if limits.timed() {
			maxDepth = MaxPly
		}
	}

	s := NewSearcher(b, e.gen, e.eval)
	s.orderer = e.orderer

	startTime := time.Now()
	res := Result{Move: board.NoMove}
	var lastIteration time.Duration

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && !e.tm.CanStartIteration(lastIteration) {
			break
		}
		iterStart := time.Now()

		move, score := s.Search(depth)
		res.Nodes += s.Nodes()
		res.Move = move
		res.Score = score
		res.Depth = depth
		lastIteration = time.Since(iterStart)

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    res.Nodes,
				Time:     time.Since(startTime),
				BestMove: move,
			})
		}

		// No legal moves, or a forced mate already found.
		if move == board.NoMove || IsMateScore(score) {
			break
		}
	}

	res.Elapsed = time.Since(startTime)
	return res
}

// Clear resets the ordering heuristics, as for a new game.
func (e *Engine) Clear() {
	e.orderer.Clear()
}

// Perft counts leaf nodes of the legal move tree (for debugging move generation).
func (e *Engine) Perft(b *board.Board, depth int) uint64 {
	return e.gen.Perft(b, depth)
}

// Evaluate returns the static evaluation of b from White's point of view.
func (e *Engine) Evaluate(b *board.Board) int {
	return e.eval.Evaluate(b)
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int) bool {
	return score > MateScore-MaxPly || score < -MateScore+MaxPly
}

// MateIn converts a mate score to full moves: positive when the side to move
// mates, negative when it gets mated.
func MateIn(score int) int {
	if score > 0 {
		return (MateScore - score + 1) / 2
	}
	return -(MateScore + score) / 2
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if IsMateScore(score) {
		if n := MateIn(score); n > 0 {
			return fmt.Sprintf("Mate in %d", n)
		}
		return fmt.Sprintf("Mated in %d", -MateIn(score))
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

// UCIScore renders score the way the UCI "info score" field expects.
func UCIScore(score int) string {
	if IsMateScore(score) {
		return fmt.Sprintf("mate %d", MateIn(score))
	}
	return fmt.Sprintf("cp %d", score)
}
