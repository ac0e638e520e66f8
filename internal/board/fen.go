package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every FEN parsing error.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN parses a FEN string into a new Board.
func ParseFEN(fen string) (*Board, error) {
	b := NewBoard()
	if err := b.SetFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// NewStartBoard returns a board in the standard starting position.
func NewStartBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// SetFEN replaces the whole position, clearing the history. On error the
// board is left unchanged.
func (b *Board) SetFEN(fen string) error {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	var next Board
	next.Reset()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(&next, parts[0]); err != nil {
		return err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		next.state.SideToMove = White
	case "b":
		next.state.SideToMove = Black
	default:
		return fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	// Parse castling rights (field 2)
	cr, err := parseCastlingRights(parts[2])
	if err != nil {
		return err
	}
	next.state.Castling = cr

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, parts[3])
		}
		next.state.EnPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return fmt.Errorf("%w: invalid half-move clock: %s", ErrInvalidFEN, parts[4])
		}
		next.state.HalfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return fmt.Errorf("%w: invalid full-move number: %s", ErrInvalidFEN, parts[5])
		}
		next.state.FullMoveNumber = fmn
	}

	if err := next.validateEnPassant(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	b.pieces = next.pieces
	b.occupancy = next.occupancy
	b.squares = next.squares
	b.state = next.state
	b.history.Clear()
	return nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(rows))
	}

	for row, rowStr := range rows {
		file := 0
		for _, c := range rowStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, 8-row)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			b.setPiece(piece, Square(row*8+file))
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, 8-row, file)
		}
	}

	return nil
}

// validateEnPassant checks that the en passant target is the square just
// passed by an enemy double push: rank 6 with White to move, rank 3 with
// Black to move, the enemy pawn in front of it and the start square empty.
func (b *Board) validateEnPassant() error {
	ep := b.state.EnPassant
	if ep == NoSquare {
		return nil
	}
	us := b.state.SideToMove
	wantRank, pawnSq, fromSq := 5, ep+8, ep-8
	if us == Black {
		wantRank, pawnSq, fromSq = 2, ep-8, ep+8
	}
	if ep.Rank() != wantRank {
		return fmt.Errorf("en passant square %s is not on rank %d", ep, wantRank+1)
	}
	if b.PieceAt(pawnSq) != NewPiece(Pawn, us.Other()) {
		return fmt.Errorf("en passant square %s has no %s pawn in front of it", ep, us.Other())
	}
	if !b.IsEmpty(ep) || !b.IsEmpty(fromSq) {
		return fmt.Errorf("en passant square %s does not follow a double push", ep)
	}
	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}

	cr := NoCastling
	for _, c := range castling {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("%w: invalid castling character: %c", ErrInvalidFEN, c)
		}
	}
	return cr, nil
}

// ToFEN returns the FEN representation of the position.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.squares[row*8+file]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.state.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.state.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(b.state.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.state.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.state.FullMoveNumber))

	return sb.String()
}
