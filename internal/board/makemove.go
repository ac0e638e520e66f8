package board

import (
	"fmt"
	"log"
)

// AttackChecker answers whether a square is attacked by a color. The move
// generator implements it; MakeMove uses it to reject moves that leave the
// mover's king in check.
type AttackChecker interface {
	IsSquareAttacked(sq Square, by Color, b *Board) bool
}

// castlingRook returns the rook relocation for a king arriving on dst.
func castlingRook(dst Square) (from, to Square) {
	switch dst {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic(fmt.Sprintf("board: invalid castling destination %s", dst))
}

// capturedSquare is where the captured piece of m stands: the target, or the
// square behind it for en passant.
func capturedSquare(m Move) Square {
	if m.IsEnPassant() {
		return m.To() ^ 8
	}
	return m.To()
}

// MakeMove applies a pseudo-legal move and reports whether it was legal. An
// illegal move is undone before returning, so the board is unchanged.
func (b *Board) MakeMove(m Move, ac AttackChecker) bool {
	us := b.state.SideToMove
	src, dst, piece := m.From(), m.To(), m.Piece()

	b.history.Push(b.state)
	b.state.Move = m
	b.state.HalfMoveClock++
	b.state.EnPassant = NoSquare

	if captured := m.Captured(); captured != NoPiece {
		b.removePiece(captured, capturedSquare(m))
		b.state.HalfMoveClock = 0
		if captured.IsRook() {
			b.state.Castling = b.state.Castling.Revoke(dst)
		}
	}

	if !piece.IsPawn() {
		b.movePiece(src, dst)
	} else {
		b.removePiece(piece, src)
		if promoted := m.Promoted(); promoted != NoPiece {
			b.setPiece(promoted, dst)
		} else {
			b.setPiece(piece, dst)
		}
		if m.IsDoublePush() {
			b.state.EnPassant = dst ^ 8
		}
		b.state.HalfMoveClock = 0
	}

	if piece.IsKing() || piece.IsRook() {
		b.state.Castling = b.state.Castling.Revoke(src)
	}

	if m.IsCastling() {
		from, to := castlingRook(dst)
		b.movePiece(from, to)
	}

	b.state.SideToMove = us.Other()
	if b.state.SideToMove == White {
		b.state.FullMoveNumber++
	}

	if DebugConsistency {
		b.mustBeConsistent("make", m)
	}

	if ksq := b.KingSquare(us); ksq != NoSquare && ac.IsSquareAttacked(ksq, us.Other(), b) {
		b.UnmakeMove()
		return false
	}
	return true
}

// UnmakeMove reverts the last move made. Calling it with no move to undo
// panics.
func (b *Board) UnmakeMove() {
	m := b.state.Move
	prev := b.history.Pop()
	src, dst, piece := m.From(), m.To(), m.Piece()

	if m.IsCastling() {
		from, to := castlingRook(dst)
		b.movePiece(to, from)
	}

	if promoted := m.Promoted(); promoted != NoPiece {
		b.removePiece(promoted, dst)
	} else {
		b.removePiece(piece, dst)
	}
	b.setPiece(piece, src)

	if captured := m.Captured(); captured != NoPiece {
		b.setPiece(captured, capturedSquare(m))
	}

	b.state = prev

	if DebugConsistency {
		b.mustBeConsistent("unmake", m)
	}
}

func (b *Board) mustBeConsistent(op string, m Move) {
	if err := b.CheckConsistency(); err != nil {
		log.Printf("%s %s left the board inconsistent: %v\n%s", op, m.Describe(), err, b)
		panic(fmt.Sprintf("board: %s %s: %v", op, m, err))
	}
}
