package board

import (
	"fmt"
	"strings"
)

// Move packs a move and its metadata into 27 bits:
// bits 0-5:   source square
// bits 6-11:  target square
// bits 12-15: moving piece
// bits 16-19: captured piece (NoPiece if none)
// bits 20-23: promoted piece (NoPiece if none)
// bit 24:     en passant
// bit 25:     castling
// bit 26:     double pawn push
type Move uint32

const (
	moveTargetShift   = 6
	movePieceShift    = 12
	moveCapturedShift = 16
	movePromotedShift = 20

	moveSquareMask = 0x3F
	movePieceMask  = 0xF

	FlagEnPassant  Move = 1 << 24
	FlagCastling   Move = 1 << 25
	FlagDoublePush Move = 1 << 26
)

// NoMove is the null move: source and target A8, no piece, no capture, no
// promotion and no flags.
const NoMove Move = Move(NoPiece)<<movePieceShift | Move(NoPiece)<<moveCapturedShift | Move(NoPiece)<<movePromotedShift

// NewMove encodes a move. The encoding is lossless for every in-range argument.
func NewMove(src, dst Square, piece, captured, promoted Piece, enPassant, castling, doublePush bool) Move {
	m := Move(src&moveSquareMask) |
		Move(dst&moveSquareMask)<<moveTargetShift |
		Move(piece&movePieceMask)<<movePieceShift |
		Move(captured&movePieceMask)<<moveCapturedShift |
		Move(promoted&movePieceMask)<<movePromotedShift
	if enPassant {
		m |= FlagEnPassant
	}
	if castling {
		m |= FlagCastling
	}
	if doublePush {
		m |= FlagDoublePush
	}
	return m
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m & moveSquareMask)
}

// To returns the target square.
func (m Move) To() Square {
	return Square((m >> moveTargetShift) & moveSquareMask)
}

// Piece returns the moving piece.
func (m Move) Piece() Piece {
	return Piece((m >> movePieceShift) & movePieceMask)
}

// Captured returns the captured piece, or NoPiece.
func (m Move) Captured() Piece {
	return Piece((m >> moveCapturedShift) & movePieceMask)
}

// Promoted returns the piece the pawn becomes, or NoPiece.
func (m Move) Promoted() Piece {
	return Piece((m >> movePromotedShift) & movePieceMask)
}

func (m Move) IsEnPassant() bool { return m&FlagEnPassant != 0 }
func (m Move) IsCastling() bool { return m&FlagCastling != 0 }
func (m Move) IsDoublePush() bool { return m&FlagDoublePush != 0 }

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured() != NoPiece
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promoted() != NoPiece
}

// IsNull reports whether m carries no moving piece.
func (m Move) IsNull() bool {
	return m.Piece() == NoPiece
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += strings.ToLower(m.Promoted().String())
	}
	return s
}

// Describe returns every decoded field on one line for debugging.
func (m Move) Describe() string {
	return fmt.Sprintf("src=%s dst=%s piece=%s captured=%s promoted=%s ep=%t castling=%t double=%t",
		m.From(), m.To(), m.Piece(), m.Captured(), m.Promoted(),
		m.IsEnPassant(), m.IsCastling(), m.IsDoublePush())
}

// MoveType selects which moves a generator call produces.
type MoveType uint8

const (
	// AllMoves produces captures and quiet moves.
	AllMoves MoveType = iota
	// Captures produces moves onto enemy pieces, including en passant.
	Captures
	// Quiets produces moves onto empty squares, pawn pushes and castling.
	Quiets
)

func (t MoveType) String() string {
	switch t {
	case AllMoves:
		return "all"
	case Captures:
		return "captures"
	case Quiets:
		return "quiets"
	}
	return "unknown"
}

// WantsCaptures reports whether captures belong to this move type.
func (t MoveType) WantsCaptures() bool { return t != Quiets }

// WantsQuiets reports whether quiet moves belong to this move type.
func (t MoveType) WantsQuiets() bool { return t != Captures }
