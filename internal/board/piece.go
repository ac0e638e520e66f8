package board

import "fmt"

// Color represents the color of a piece or player. Both is only a query
// parameter for aggregate occupancy; no piece ever has it.
type Color uint8

const (
	White Color = iota
	Black
	Both
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Index returns the color as an array index for per-side tables.
func (c Color) Index() int {
	switch c {
	case White:
		return 0
	case Black:
		return 1
	}
	panic(fmt.Sprintf("board: color has no index: %d", uint8(c)))
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Both"
	}
}

// PieceType represents the role of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// pieceWeight is the static evaluation weight per piece type.
var pieceWeight = [6]int{100, 300, 350, 500, 1000, 10000}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// AllPieces lists the twelve concrete pieces in index order.
var AllPieces = [12]Piece{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= Both {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Index maps the piece to its slot in per-piece tables. NoPiece has no slot.
func (p Piece) Index() int {
	if p >= NoPiece {
		panic(fmt.Sprintf("board: piece has no index: %d", uint8(p)))
	}
	return int(p)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece. NoPiece reports Both.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return Both
	}
	return Color(p / 6)
}

func (p Piece) IsNone() bool { return p >= NoPiece }
func (p Piece) IsPawn() bool { return p.Type() == Pawn }
func (p Piece) IsKnight() bool { return p.Type() == Knight }
func (p Piece) IsBishop() bool { return p.Type() == Bishop }
func (p Piece) IsRook() bool { return p.Type() == Rook }
func (p Piece) IsQueen() bool { return p.Type() == Queen }
func (p Piece) IsKing() bool { return p.Type() == King }

// Flip returns the same role in the opposite color. NoPiece stays NoPiece.
func (p Piece) Flip() Piece {
	if p >= NoPiece {
		return NoPiece
	}
	return NewPiece(p.Type(), p.Color().Other())
}

// ToColor returns the same role in color c. Generation code is written for
// one side and recolored through this.
func (p Piece) ToColor(c Color) Piece {
	if p >= NoPiece {
		panic("board: cannot recolor NoPiece")
	}
	return NewPiece(p.Type(), c)
}

// Weight returns the signed static weight: positive for White, negative for Black.
func (p Piece) Weight() int {
	if p >= NoPiece {
		return 0
	}
	w := pieceWeight[p.Type()]
	if p.Color() == Black {
		return -w
	}
	return w
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	chars := "PNBRQKpnbrqk"
	return string(chars[p])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
