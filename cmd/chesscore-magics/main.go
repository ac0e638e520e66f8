// Command chesscore-magics searches for magic multipliers and prints them as
// Go source for internal/movegen/magic_numbers.go.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"go/format"
	"log"
	"math/rand/v2"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		seed    uint64
		workers int
		output  string
	)
	flag.Uint64Var(&seed, "seed", 0x2545F4914F6CDD1D, "random seed; the same seed reproduces the same constants")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "squares searched in parallel")
	flag.StringVar(&output, "output", "", "write the Go source here instead of stdout")
	flag.Parse()

	src, err := generate(context.Background(), seed, workers)
	if err != nil {
		log.Fatal(err)
	}

	if output == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(output, src, 0644); err != nil {
		log.Fatal(err)
	}
}

// findAll searches every square for slider s. Each square gets its own
// generator seeded from (seed, slider, square) so results do not depend on
// scheduling.
func findAll(ctx context.Context, s movegen.Slider, seed uint64, workers int) ([64]uint64, error) {
	var magics [64]uint64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	for i := 0; i < 64; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seed, uint64(s)<<8|uint64(i)))
			m, err := movegen.FindMagic(board.SquareFromIndex(i), s, rng)
			if err != nil {
				return err
			}
			magics[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return magics, err
	}
	return magics, nil
}

func generate(ctx context.Context, seed uint64, workers int) ([]byte, error) {
	bishops, err := findAll(ctx, movegen.BishopSlider, seed, workers)
	if err != nil {
		return nil, err
	}
	rooks, err := findAll(ctx, movegen.RookSlider, seed, workers)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("package movegen\n\n")
	buf.WriteString("// Magic multipliers for the fancy magic bitboard hashing, in square order\n")
	buf.WriteString("// A8..H1. Regenerate with cmd/chesscore-magics.\n\n")
	writeTable(&buf, "bishopMagicNumbers", &bishops)
	buf.WriteString("\n")
	writeTable(&buf, "rookMagicNumbers", &rooks)

	return format.Source(buf.Bytes())
}

func writeTable(buf *bytes.Buffer, name string, magics *[64]uint64) {
	fmt.Fprintf(buf, "var %s = [64]uint64{\n", name)
	for i, m := range magics {
		sep := " "
		if i%4 == 3 {
			sep = "\n"
		}
		fmt.Fprintf(buf, "0x%016X,%s", m, sep)
	}
	buf.WriteString("}\n")
}
