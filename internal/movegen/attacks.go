// Package movegen builds the attack tables once and generates pseudo-legal
// moves from them. A Generator is read-only after New and may be shared
// between goroutines; each goroutine needs its own board.Board.
package movegen

import "github.com/hailam/chesscore/internal/board"

// Generator holds the precomputed attack tables.
type Generator struct {
	knightAttacks [64]board.Bitboard
	kingAttacks   [64]board.Bitboard
	pawnAttacks   [2][64]board.Bitboard // [Color][Square]

	bishopMagics [64]Magic
	rookMagics   [64]Magic
	bishopTable  []board.Bitboard
	rookTable    []board.Bitboard
}

// New builds every attack table. It panics if a magic constant is wrong.
func New() *Generator {
	g := &Generator{
		bishopTable: make([]board.Bitboard, bishopTableSize),
		rookTable:   make([]board.Bitboard, rookTableSize),
	}
	g.initKnightAttacks()
	g.initKingAttacks()
	g.initPawnAttacks()
	g.bishopMagics = buildMagicTable(BishopSlider, &bishopMagicNumbers, g.bishopTable)
	g.rookMagics = buildMagicTable(RookSlider, &rookMagicNumbers, g.rookTable)
	return g
}

func (g *Generator) initKnightAttacks() {
	for sq := board.A8; sq <= board.H1; sq++ {
		bb := sq.BB()

		// Knight moves: 2+1 or 1+2 in any direction
		attacks := board.Empty

		// Up 2, left/right 1
		attacks |= (bb >> 15) & board.NotFileA // NNE
		attacks |= (bb >> 17) & board.NotFileH // NNW
		attacks |= (bb << 15) & board.NotFileH // SSW
		attacks |= (bb << 17) & board.NotFileA // SSE

		// Up 1, left/right 2
		attacks |= (bb >> 6) & board.NotFileAB  // ENE
		attacks |= (bb >> 10) & board.NotFileGH // WNW
		attacks |= (bb << 6) & board.NotFileGH  // WSW
		attacks |= (bb << 10) & board.NotFileAB // ESE

		g.knightAttacks[sq] = attacks
	}
}

func (g *Generator) initKingAttacks() {
	for sq := board.A8; sq <= board.H1; sq++ {
		bb := sq.BB()

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		g.kingAttacks[sq] = attacks
	}
}

func (g *Generator) initPawnAttacks() {
	for sq := board.A8; sq <= board.H1; sq++ {
		bb := sq.BB()

		// White pawns capture toward rank 8, Black toward rank 1
		g.pawnAttacks[board.White][sq] = bb.NorthEast() | bb.NorthWest()
		g.pawnAttacks[board.Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

// KnightAttacks returns the knight attack bitboard for a square.
func (g *Generator) KnightAttacks(sq board.Square) board.Bitboard {
	return g.knightAttacks[sq.Index()]
}

// KingAttacks returns the king attack bitboard for a square.
func (g *Generator) KingAttacks(sq board.Square) board.Bitboard {
	return g.kingAttacks[sq.Index()]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func (g *Generator) PawnAttacks(sq board.Square, c board.Color) board.Bitboard {
	return g.pawnAttacks[c.Index()][sq.Index()]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func (g *Generator) BishopAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return g.bishopTable[g.bishopMagics[sq.Index()].Index(occupied)]
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func (g *Generator) RookAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return g.rookTable[g.rookMagics[sq.Index()].Index(occupied)]
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func (g *Generator) QueenAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return g.BishopAttacks(sq, occupied) | g.RookAttacks(sq, occupied)
}

// BishopMagic returns the magic entry used for a bishop on sq.
func (g *Generator) BishopMagic(sq board.Square) Magic {
	return g.bishopMagics[sq.Index()]
}

// RookMagic returns the magic entry used for a rook on sq.
func (g *Generator) RookMagic(sq board.Square) Magic {
	return g.rookMagics[sq.Index()]
}

// IsSquareAttacked returns true if the square is attacked by the given
// color. Pieces are tried from pawn to queen and the first hit returns.
func (g *Generator) IsSquareAttacked(sq board.Square, by board.Color, b *board.Board) bool {
	// A pawn of color by attacks sq exactly when a pawn of the other color
	// on sq would attack the pawn's square.
	if g.pawnAttacks[by.Other().Index()][sq.Index()]&b.Pieces(board.NewPiece(board.Pawn, by)) != 0 {
		return true
	}
	if g.knightAttacks[sq.Index()]&b.Pieces(board.NewPiece(board.Knight, by)) != 0 {
		return true
	}
	if g.kingAttacks[sq.Index()]&b.Pieces(board.NewPiece(board.King, by)) != 0 {
		return true
	}

	occupied := b.Occupancy(board.Both)
	diagonal := g.BishopAttacks(sq, occupied)
	if diagonal&b.Pieces(board.NewPiece(board.Bishop, by)) != 0 {
		return true
	}
	straight := g.RookAttacks(sq, occupied)
	if straight&b.Pieces(board.NewPiece(board.Rook, by)) != 0 {
		return true
	}
	return (diagonal|straight)&b.Pieces(board.NewPiece(board.Queen, by)) != 0
}

// Attackers returns every piece of color by that attacks sq.
func (g *Generator) Attackers(sq board.Square, by board.Color, b *board.Board) board.Bitboard {
	occupied := b.Occupancy(board.Both)
	queens := b.Pieces(board.NewPiece(board.Queen, by))
	return (g.pawnAttacks[by.Other().Index()][sq.Index()] & b.Pieces(board.NewPiece(board.Pawn, by))) |
		(g.knightAttacks[sq.Index()] & b.Pieces(board.NewPiece(board.Knight, by))) |
		(g.kingAttacks[sq.Index()] & b.Pieces(board.NewPiece(board.King, by))) |
		(g.BishopAttacks(sq, occupied) & (b.Pieces(board.NewPiece(board.Bishop, by)) | queens)) |
		(g.RookAttacks(sq, occupied) & (b.Pieces(board.NewPiece(board.Rook, by)) | queens))
}
