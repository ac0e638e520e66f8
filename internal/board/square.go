// Package board implements the chess position: squares, pieces, bitboards,
// packed moves, game state with an undo history, and make/unmake.
package board

import "fmt"

// Square identifies one of the 64 squares, row-major from the top-left:
// A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// Index returns the zero-based square index.
func (sq Square) Index() int {
	if !sq.IsValid() {
		panic(fmt.Sprintf("board: square index out of range: %d", uint8(sq)))
	}
	return int(sq)
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return 7 - int(sq)>>3
}

// Row returns the row counted from the top of the board (0 = rank 8).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// BB returns the singleton bitboard for the square.
func (sq Square) BB() Bitboard {
	return Bitboard(1) << sq.Index()
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed, rank 0 = first rank).
func NewSquare(file, rank int) Square {
	return Square((7-rank)*8 + file)
}

// SquareFromIndex converts a raw index into a Square.
func SquareFromIndex(i int) Square {
	if i < 0 || i > 63 {
		panic(fmt.Sprintf("board: square index out of range: %d", i))
	}
	return Square(i)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square reflected across the horizontal midline (a8 <-> a1).
func (sq Square) Mirror() Square {
	return sq ^ 56
}
