package movegen

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func squares(sqs ...board.Square) board.Bitboard {
	var bb board.Bitboard
	for _, sq := range sqs {
		bb |= sq.BB()
	}
	return bb
}

func TestLeaperTables(t *testing.T) {
	tests := []struct {
		name string
		got  board.Bitboard
		want board.Bitboard
	}{
		{"knight a8", gen.KnightAttacks(board.A8), squares(board.B6, board.C7)},
		{"knight h1", gen.KnightAttacks(board.H1), squares(board.G3, board.F2)},
		{"knight d4", gen.KnightAttacks(board.D4), squares(board.C6, board.E6, board.F5, board.F3, board.E2, board.C2, board.B3, board.B5)},
		{"knight g7", gen.KnightAttacks(board.G7), squares(board.E8, board.E6, board.F5, board.H5)},
		{"king a1", gen.KingAttacks(board.A1), squares(board.A2, board.B2, board.B1)},
		{"king h8", gen.KingAttacks(board.H8), squares(board.G8, board.G7, board.H7)},
		{"king e4", gen.KingAttacks(board.E4), squares(board.D5, board.E5, board.F5, board.D4, board.F4, board.D3, board.E3, board.F3)},
		{"white pawn e4", gen.PawnAttacks(board.E4, board.White), squares(board.D5, board.F5)},
		{"white pawn a2", gen.PawnAttacks(board.A2, board.White), squares(board.B3)},
		{"black pawn h7", gen.PawnAttacks(board.H7, board.Black), squares(board.G6)},
		{"black pawn d5", gen.PawnAttacks(board.D5, board.Black), squares(board.C4, board.E4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got\n%v\nwant\n%v", tc.got, tc.want)
			}
		})
	}
}

func TestIsSquareAttacked(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		sq   board.Square
		by   board.Color
		want bool
	}{
		{"white pawn", "4k3/8/8/3P4/8/8/8/4K3 w - - 0 1", board.E6, board.White, true},
		{"white pawn not backwards", "4k3/8/8/3P4/8/8/8/4K3 w - - 0 1", board.E4, board.White, false},
		{"black pawn", "4k3/8/8/3p4/8/8/8/4K3 w - - 0 1", board.C4, board.Black, true},
		{"black pawn with white to move", "4k3/8/8/3p4/8/8/8/4K3 w - - 0 1", board.C6, board.Black, false},
		{"knight", "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", board.E1, board.Black, true},
		{"king", "8/8/8/8/8/8/3k4/4K3 w - - 0 1", board.E1, board.Black, true},
		{"rook on open file", "4k3/8/8/8/8/8/8/r3K3 w - - 0 1", board.D1, board.Black, true},
		{"rook blocked", "4k3/8/8/8/8/8/8/r1N1K3 w - - 0 1", board.D1, board.Black, false},
		{"bishop diagonal", "4k3/8/8/1b6/8/8/8/4K3 w - - 0 1", board.E2, board.Black, true},
		{"queen", "4k3/8/8/8/8/8/8/q3K3 w - - 0 1", board.E1, board.Black, true},
		{"nothing", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", board.D4, board.Black, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.fen)
			if got := gen.IsSquareAttacked(tc.sq, tc.by, b); got != tc.want {
				t.Errorf("IsSquareAttacked(%s, %s) = %v, want %v", tc.sq, tc.by, got, tc.want)
			}
			if got := gen.Attackers(tc.sq, tc.by, b) != 0; got != tc.want {
				t.Errorf("Attackers(%s, %s) non-empty = %v, want %v", tc.sq, tc.by, got, tc.want)
			}
		})
	}
}

func TestGenerateMovesByType(t *testing.T) {
	b := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")

	var all, captures, quiets board.MoveList
	gen.GenerateMoves(b, &all, board.AllMoves)
	gen.GenerateMoves(b, &captures, board.Captures)
	gen.GenerateMoves(b, &quiets, board.Quiets)

	if captures.Len()+quiets.Len() != all.Len() {
		t.Errorf("captures (%d) + quiets (%d) != all (%d)", captures.Len(), quiets.Len(), all.Len())
	}
	for _, m := range captures.Slice() {
		if !m.IsCapture() {
			t.Errorf("capture list holds quiet move %s", m.Describe())
		}
		if !all.Contains(m) {
			t.Errorf("capture %s missing from all moves", m)
		}
	}
	for _, m := range quiets.Slice() {
		if m.IsCapture() {
			t.Errorf("quiet list holds capture %s", m.Describe())
		}
		if !all.Contains(m) {
			t.Errorf("quiet %s missing from all moves", m)
		}
	}

	// Kiwipete: 8 captures and both castles for White.
	if captures.Len() != 8 {
		t.Errorf("captures = %d, want 8", captures.Len())
	}
	castles := 0
	for _, m := range quiets.Slice() {
		if m.IsCastling() {
			castles++
		}
	}
	if castles != 2 {
		t.Errorf("castling moves = %d, want 2", castles)
	}
}

func TestGenerateMovesMetadata(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		check func(board.Move) bool
	}{
		{"double push", board.StartFEN, "e2e4", board.Move.IsDoublePush},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", board.Move.IsEnPassant},
		{"castling", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", board.Move.IsCastling},
		{"promotion", "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8n", board.Move.IsPromotion},
		{"capture promotion", "r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7a8q", board.Move.IsCapture},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.fen)
			var ml board.MoveList
			gen.GenerateMoves(b, &ml, board.AllMoves)

			for _, m := range ml.Slice() {
				if m.String() == tc.move {
					if !tc.check(m) {
						t.Errorf("%s lacks expected flag: %s", tc.move, m.Describe())
					}
					return
				}
			}
			t.Errorf("%s not generated; got %v", tc.move, ml.Slice())
		})
	}
}

func TestCastlingBlockedByAttack(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"both sides free", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 2},
		{"king in check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1", 0},
		{"f1 attacked", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", 1},
		{"b1 attacked only", "r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq - 0 1", 2},
		{"b1 occupied", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", 1},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.fen)
			var ml board.MoveList
			gen.GenerateMoves(b, &ml, board.Quiets)
			got := 0
			for _, m := range ml.Slice() {
				if m.IsCastling() {
					got++
				}
			}
			if got != tc.want {
				t.Errorf("castling moves = %d, want %d", got, tc.want)
			}
		})
	}
}
