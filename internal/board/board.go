package board

import (
	"fmt"
	"strings"
)

// DebugConsistency enables a full consistency check of the three piece
// views after every make and unmake. A divergence panics.
var DebugConsistency = false

// Board is the complete mutable position: per-piece bitboards, per-color
// occupancy, a piece-by-square cache, the current game state and the undo
// history. The three piece views always agree.
//
// A Board is large (the history is inline) and is meant to be allocated once
// and mutated in place.
type Board struct {
	pieces    [12]Bitboard
	occupancy [2]Bitboard
	squares   [64]Piece
	state     GameState
	history   History
}

// NewBoard returns an empty board with White to move and no castling rights.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset clears every piece, the state and the history.
func (b *Board) Reset() {
	b.pieces = [12]Bitboard{}
	b.occupancy = [2]Bitboard{}
	for i := range b.squares {
		b.squares[i] = NoPiece
	}
	b.state = NewGameState()
	b.state.Castling = NoCastling
	b.history.Clear()
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	return b.squares[sq.Index()]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.squares[sq.Index()] == NoPiece
}

// Pieces returns the bitboard of one piece kind.
func (b *Board) Pieces(p Piece) Bitboard {
	return b.pieces[p.Index()]
}

// Occupancy returns the squares held by c. Both returns the union.
func (b *Board) Occupancy(c Color) Bitboard {
	if c == Both {
		return b.occupancy[0] | b.occupancy[1]
	}
	return b.occupancy[c.Index()]
}

func (b *Board) SideToMove() Color { return b.state.SideToMove }
func (b *Board) Castling() CastlingRights { return b.state.Castling }
func (b *Board) EnPassant() Square { return b.state.EnPassant }
func (b *Board) HalfMoveClock() int { return b.state.HalfMoveClock }
func (b *Board) FullMoveNumber() int { return b.state.FullMoveNumber }
func (b *Board) State() GameState { return b.state }

// Ply returns the number of moves made since the position was set up.
func (b *Board) Ply() int {
	return b.history.Len()
}

// MovesPlayed returns the moves made since the position was set up, oldest
// first.
func (b *Board) MovesPlayed() []Move {
	n := b.history.Len()
	if n == 0 {
		return nil
	}
	moves := make([]Move, 0, n)
	for i := 1; i < n; i++ {
		moves = append(moves, b.history.Get(i).Move)
	}
	return append(moves, b.state.Move)
}

// LastMove returns the move that led to the current position, or NoMove.
func (b *Board) LastMove() Move {
	return b.state.Move
}

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	kings := b.pieces[NewPiece(King, c).Index()]
	if kings.Empty() {
		return NoSquare
	}
	return kings.LSB()
}

// InCheck reports whether the side to move's king is attacked.
func (b *Board) InCheck(ac AttackChecker) bool {
	us := b.state.SideToMove
	ksq := b.KingSquare(us)
	if ksq == NoSquare {
		return false
	}
	return ac.IsSquareAttacked(ksq, us.Other(), b)
}

// setPiece places a piece on an empty square, updating all three views.
func (b *Board) setPiece(p Piece, sq Square) {
	bb := sq.BB()
	b.pieces[p.Index()] |= bb
	b.occupancy[p.Color().Index()] |= bb
	b.squares[sq.Index()] = p
}

// removePiece removes p from sq, updating all three views.
func (b *Board) removePiece(p Piece, sq Square) {
	bb := sq.BB()
	b.pieces[p.Index()] &^= bb
	b.occupancy[p.Color().Index()] &^= bb
	b.squares[sq.Index()] = NoPiece
}

// movePiece relocates the piece on from to the empty square to.
func (b *Board) movePiece(from, to Square) {
	p := b.squares[from.Index()]
	b.removePiece(p, from)
	b.setPiece(p, to)
}

// Snapshot is a comparable copy of every field of a Board except the
// history buffer.
type Snapshot struct {
	Pieces    [12]Bitboard
	Occupancy [2]Bitboard
	Squares   [64]Piece
	State     GameState
	Ply       int
}

// Snapshot captures the board for equality checks.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Pieces:    b.pieces,
		Occupancy: b.occupancy,
		Squares:   b.squares,
		State:     b.state,
		Ply:       b.history.Len(),
	}
}

// CheckConsistency verifies that the piece bitboards, the color occupancy
// and the square cache describe the same placement.
func (b *Board) CheckConsistency() error {
	var seen Bitboard
	var occ [2]Bitboard
	for _, p := range AllPieces {
		bb := b.pieces[p.Index()]
		if seen&bb != 0 {
			return fmt.Errorf("piece %s overlaps another piece on %s", p, (seen & bb).LSB())
		}
		seen |= bb
		occ[p.Color().Index()] |= bb
	}
	for c := White; c <= Black; c++ {
		if occ[c.Index()] != b.occupancy[c.Index()] {
			return fmt.Errorf("%s occupancy mismatch: have %#x, pieces give %#x", c, uint64(b.occupancy[c.Index()]), uint64(occ[c.Index()]))
		}
	}
	for i := 0; i < 64; i++ {
		sq := Square(i)
		p := b.squares[i]
		if p == NoPiece {
			if seen.IsSet(sq) {
				return fmt.Errorf("square %s is empty in cache but set in bitboards", sq)
			}
			continue
		}
		if !b.pieces[p.Index()].IsSet(sq) {
			return fmt.Errorf("square %s holds %s in cache but not in bitboards", sq, p)
		}
	}
	return nil
}

// Validate checks that the position is playable: one king per side and no
// pawns on the back ranks.
func (b *Board) Validate() error {
	if b.pieces[WhiteKing.Index()].PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if b.pieces[BlackKing.Index()].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if (b.pieces[WhitePawn.Index()]|b.pieces[BlackPawn.Index()])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	return b.CheckConsistency()
}

// String returns a visual representation of the position.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for file := 0; file < 8; file++ {
			sb.WriteString(" " + b.squares[row*8+file].String() + " ")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n    a  b  c  d  e  f  g  h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.state.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", b.state.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", b.state.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", b.state.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", b.state.FullMoveNumber)
	fmt.Fprintf(&sb, "FEN: %s\n", b.ToFEN())
	return sb.String()
}
