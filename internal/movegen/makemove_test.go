package movegen

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func findMove(t *testing.T, b *board.Board, uci string) board.Move {
	t.Helper()
	var ml board.MoveList
	gen.GenerateMoves(b, &ml, board.AllMoves)
	for _, m := range ml.Slice() {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("move %s not generated in %s", uci, b.ToFEN())
	return board.NoMove
}

func TestMakeUnmakeRestoresEveryField(t *testing.T) {
	for _, fen := range oraclePositions {
		t.Run(fen, func(t *testing.T) {
			b := mustParse(t, fen)
			var ml board.MoveList
			gen.GenerateMoves(b, &ml, board.AllMoves)

			for _, m := range ml.Slice() {
				before := b.Snapshot()
				if !b.MakeMove(m, gen) {
					if after := b.Snapshot(); after != before {
						t.Fatalf("illegal %s left the board changed", m.Describe())
					}
					continue
				}
				if err := b.CheckConsistency(); err != nil {
					t.Fatalf("after %s: %v", m, err)
				}
				b.UnmakeMove()
				if after := b.Snapshot(); after != before {
					t.Fatalf("unmake %s did not restore the board:\n%s", m.Describe(), b)
				}
			}
		})
	}
}

func TestMakeMoveStateUpdates(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		move     string
		wantFEN  string
		wantLast bool
	}{
		{
			name:    "double push sets en passant",
			fen:     board.StartFEN,
			move:    "e2e4",
			wantFEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name:    "black move increments fullmove",
			fen:     "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			move:    "g8f6",
			wantFEN: "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2",
		},
		{
			name:    "en passant removes the pawn behind the target",
			fen:     "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
			move:    "e5d6",
			wantFEN: "4k3/8/3P4/8/8/8/8/4K3 b - - 0 1",
		},
		{
			name:    "kingside castle moves the rook",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 3 1",
			move:    "e1g1",
			wantFEN: "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 4 1",
		},
		{
			name:    "queenside castle moves the rook",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 1",
			move:    "e8c8",
			wantFEN: "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 4 2",
		},
		{
			name:    "rook move revokes one side",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:    "h1h4",
			wantFEN: "r3k2r/8/8/8/7R/8/8/R3K3 b Qkq - 1 1",
		},
		{
			name:    "capturing a rook revokes its side",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:    "h1h8",
			wantFEN: "r3k2R/8/8/8/8/8/8/R3K3 b Qq - 0 1",
		},
		{
			name:    "king move revokes both sides",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			move:    "e8d8",
			wantFEN: "r2k3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			name:    "promotion with capture",
			fen:     "r3k3/1P6/8/8/8/8/8/4K3 w q - 0 1",
			move:    "b7a8q",
			wantFEN: "Q3k3/8/8/8/8/8/8/4K3 b - - 0 1",
		},
		{
			name:    "underpromotion",
			fen:     "4k3/1P6/8/8/8/8/8/4K3 w - - 5 1",
			move:    "b7b8n",
			wantFEN: "1N2k3/8/8/8/8/8/8/4K3 b - - 0 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.fen)
			before := b.Snapshot()
			m := findMove(t, b, tc.move)

			if !b.MakeMove(m, gen) {
				t.Fatalf("%s rejected as illegal", tc.move)
			}
			if got := b.ToFEN(); got != tc.wantFEN {
				t.Errorf("after %s:\n got %s\nwant %s", tc.move, got, tc.wantFEN)
			}
			if b.LastMove() != m {
				t.Errorf("LastMove = %v, want %v", b.LastMove(), m)
			}
			if b.Ply() != 1 {
				t.Errorf("Ply = %d, want 1", b.Ply())
			}

			b.UnmakeMove()
			if after := b.Snapshot(); after != before {
				t.Errorf("unmake did not restore %s, got %s", tc.fen, b.ToFEN())
			}
		})
	}
}

func TestMakeMoveRejectsSelfCheck(t *testing.T) {
	// The e2 knight is pinned against the king by the e8 rook.
	b := mustParse(t, "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	before := b.Snapshot()

	m := findMove(t, b, "e2c3")
	if b.MakeMove(m, gen) {
		t.Fatal("pinned knight move accepted")
	}
	if after := b.Snapshot(); after != before {
		t.Errorf("rejected move changed the board: %s", b.ToFEN())
	}
	if b.Ply() != 0 {
		t.Errorf("history not unwound: ply %d", b.Ply())
	}
}

func TestUnmakeWithoutHistoryPanics(t *testing.T) {
	b := board.NewStartBoard()
	defer func() {
		if recover() == nil {
			t.Error("expected panic on history underflow")
		}
	}()
	b.UnmakeMove()
}

func TestSetFENClearsHistory(t *testing.T) {
	b := board.NewStartBoard()
	b.MakeMove(findMove(t, b, "e2e4"), gen)
	if b.Ply() != 1 {
		t.Fatalf("Ply = %d, want 1", b.Ply())
	}
	if err := b.SetFEN(board.StartFEN); err != nil {
		t.Fatal(err)
	}
	if b.Ply() != 0 {
		t.Errorf("Ply after SetFEN = %d, want 0", b.Ply())
	}
	if b.LastMove() != board.NoMove {
		t.Errorf("LastMove after SetFEN = %v, want NoMove", b.LastMove())
	}
}

func TestMovesPlayed(t *testing.T) {
	b := board.NewStartBoard()
	if got := b.MovesPlayed(); len(got) != 0 {
		t.Fatalf("MovesPlayed on a fresh board = %v", got)
	}

	line := []string{"e2e4", "c7c5", "g1f3", "d7d6"}
	for _, s := range line {
		if !b.MakeMove(findMove(t, b, s), gen) {
			t.Fatalf("%s rejected", s)
		}
	}
	b.UnmakeMove()

	got := b.MovesPlayed()
	if len(got) != 3 {
		t.Fatalf("MovesPlayed = %v, want 3 moves", got)
	}
	for i, m := range got {
		if m.String() != line[i] {
			t.Errorf("move %d = %s, want %s", i, m, line[i])
		}
	}
}
