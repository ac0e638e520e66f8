package movegen

import "github.com/hailam/chesscore/internal/board"

// LegalMoves returns the legal moves of the side to move. Each candidate is
// made and unmade, so b is unchanged on return.
func (g *Generator) LegalMoves(b *board.Board) board.MoveList {
	var pseudo, legal board.MoveList
	g.GenerateMoves(b, &pseudo, board.AllMoves)
	for _, m := range pseudo.Slice() {
		if b.MakeMove(m, g) {
			b.UnmakeMove()
			legal.Add(m)
		}
	}
	return legal
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (g *Generator) Perft(b *board.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var ml board.MoveList
	g.GenerateMoves(b, &ml, board.AllMoves)

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		if !b.MakeMove(ml.Get(i), g) {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += g.Perft(b, depth-1)
		}
		b.UnmakeMove()
	}
	return nodes
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide runs perft below each legal root move, in generation order.
func (g *Generator) Divide(b *board.Board, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}

	var ml board.MoveList
	g.GenerateMoves(b, &ml, board.AllMoves)

	entries := make([]DivideEntry, 0, ml.Len())
	for _, m := range ml.Slice() {
		if !b.MakeMove(m, g) {
			continue
		}
		entries = append(entries, DivideEntry{Move: m, Nodes: g.Perft(b, depth-1)})
		b.UnmakeMove()
	}
	return entries
}
