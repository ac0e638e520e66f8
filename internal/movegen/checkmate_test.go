package movegen

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: Black king on h8 boxed in by its own pawns, White rook on a8.
	b := mustParse(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	t.Log("Checkmate position:")
	t.Log(b)

	if !b.InCheck(gen) {
		t.Fatal("Expected black to be in check")
	}

	legal := gen.LegalMoves(b)
	t.Log("Black legal moves:", legal.Len())
	if legal.Len() != 0 {
		t.Errorf("Expected checkmate but found %d legal moves: %v", legal.Len(), legal.Slice())
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king can capture the checking rook.
	b := mustParse(t, "6Rk/8/8/8/8/8/8/K7 b - - 0 1")

	if !b.InCheck(gen) {
		t.Fatal("Expected black to be in check")
	}

	legal := gen.LegalMoves(b)
	capture, ok := legal.Find(board.H8, board.G8, board.NoPieceType)
	if !ok {
		t.Fatalf("Expected Kxg8 among legal moves, got %v", legal.Slice())
	}
	if capture.Captured() != board.WhiteRook {
		t.Errorf("Kxg8 captured = %v, want %v", capture.Captured(), board.WhiteRook)
	}
}

func TestStalemate(t *testing.T) {
	b := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	if b.InCheck(gen) {
		t.Fatal("Expected black not to be in check")
	}
	if legal := gen.LegalMoves(b); legal.Len() != 0 {
		t.Errorf("Expected stalemate but found %d legal moves: %v", legal.Len(), legal.Slice())
	}
}
