package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Has reports whether every right in r is still held.
func (cr CastlingRights) Has(r CastlingRights) bool {
	return cr&r == r
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Revoke drops the rights tied to a king or rook home square. Other squares
// leave the rights unchanged. Rights are never re-granted.
func (cr CastlingRights) Revoke(sq Square) CastlingRights {
	switch sq {
	case A1:
		return cr &^ WhiteQueenSideCastle
	case E1:
		return cr &^ (WhiteKingSideCastle | WhiteQueenSideCastle)
	case H1:
		return cr &^ WhiteKingSideCastle
	case A8:
		return cr &^ BlackQueenSideCastle
	case E8:
		return cr &^ (BlackKingSideCastle | BlackQueenSideCastle)
	case H8:
		return cr &^ BlackKingSideCastle
	}
	return cr
}

// GameState is the mutable metadata of a position. It is copied by value
// onto the History on every make and restored whole on unmake.
type GameState struct {
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Plies since last pawn move or capture
	FullMoveNumber int    // Full move counter, starts at 1
	Move           Move   // Move that produced this state, NoMove at the root
}

// NewGameState returns the state of a fresh game with White to move.
func NewGameState() GameState {
	return GameState{
		SideToMove:     White,
		Castling:       AllCastling,
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
		Move:           NoMove,
	}
}

func (s GameState) String() string {
	return fmt.Sprintf("side=%s castling=%s ep=%s halfmove=%d fullmove=%d",
		s.SideToMove, s.Castling, s.EnPassant, s.HalfMoveClock, s.FullMoveNumber)
}
