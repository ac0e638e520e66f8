package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/storage"
)

type benchPosition struct {
	Name string
	FEN  string
	// Nodes[d-1] is the reference perft count at depth d.
	Nodes []uint64
}

// Expected returns the reference count at depth, or 0 when unknown.
func (p benchPosition) Expected(depth int) uint64 {
	if depth < 1 || depth > len(p.Nodes) {
		return 0
	}
	return p.Nodes[depth-1]
}

var builtinSuite = []benchPosition{
	{"startpos", board.StartFEN,
		[]uint64{20, 400, 8902, 197281, 4865609}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		[]uint64{48, 2039, 97862, 4085603}},
	{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		[]uint64{14, 191, 2812, 43238, 674624}},
	{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		[]uint64{6, 264, 9467, 422333}},
	{"talkchess", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		[]uint64{44, 1486, 62379, 2103487}},
	{"middlegame", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		[]uint64{46, 2079, 89890, 3894594}},
}

func suiteByName(name string) ([]benchPosition, error) {
	switch name {
	case "builtin":
		return builtinSuite, nil
	case "startpos":
		return builtinSuite[:1], nil
	}
	return nil, fmt.Errorf("unknown suite %q (want builtin or startpos)", name)
}

// runSuite counts perft nodes for every position concurrently. Each worker
// owns its board; the generator is shared read-only.
func runSuite(ctx context.Context, gen *movegen.Generator, suite []benchPosition, depth, workers int) ([]storage.BenchRun, error) {
	runs := make([]storage.BenchRun, len(suite))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	for i, p := range suite {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := board.ParseFEN(p.FEN)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}

			start := time.Now()
			nodes := gen.Perft(b, depth)
			runs[i] = storage.BenchRun{
				FEN:      p.FEN,
				Depth:    depth,
				Nodes:    nodes,
				Expected: p.Expected(depth),
				Elapsed:  time.Since(start),
				At:       start,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
