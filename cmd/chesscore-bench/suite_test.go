package main

import (
	"context"
	"errors"
	"testing"

	"github.com/hailam/chesscore/internal/movegen"
)

func TestRunSuiteMatchesReferences(t *testing.T) {
	gen := movegen.New()
	for depth := 1; depth <= 2; depth++ {
		runs, err := runSuite(context.Background(), gen, builtinSuite, depth, 4)
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != len(builtinSuite) {
			t.Fatalf("got %d runs, want %d", len(runs), len(builtinSuite))
		}
		for i, r := range runs {
			if r.FEN != builtinSuite[i].FEN || r.Depth != depth {
				t.Errorf("run %d is for %s depth %d", i, r.FEN, r.Depth)
			}
			if !r.Matches() {
				t.Errorf("%s perft(%d) = %d, want %d", builtinSuite[i].Name, depth, r.Nodes, r.Expected)
			}
		}
	}
}

func TestRunSuiteBadFEN(t *testing.T) {
	suite := []benchPosition{{Name: "broken", FEN: "8/8 w - -"}}
	if _, err := runSuite(context.Background(), movegen.New(), suite, 1, 1); err == nil {
		t.Error("expected an error for a broken FEN")
	}
}

func TestRunRejectsMismatch(t *testing.T) {
	saved := builtinSuite[0].Nodes
	builtinSuite[0].Nodes = []uint64{21}
	defer func() { builtinSuite[0].Nodes = saved }()

	err := run(1, 1, "startpos", "", true, "")
	if !errors.Is(err, errMismatch) {
		t.Errorf("run error = %v, want errMismatch", err)
	}
}

func TestSuiteByName(t *testing.T) {
	if s, err := suiteByName("startpos"); err != nil || len(s) != 1 {
		t.Errorf("startpos suite = %d positions, %v", len(s), err)
	}
	if _, err := suiteByName("nope"); err == nil {
		t.Error("expected an error for an unknown suite")
	}
	if got := builtinSuite[0].Expected(9); got != 0 {
		t.Errorf("Expected beyond the table = %d, want 0", got)
	}
}
