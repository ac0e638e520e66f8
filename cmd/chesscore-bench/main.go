package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		depth     int
		workers   int
		suiteName string
		dbDir     string
		noStore   bool
		pngDir    string
	)
	flag.IntVar(&depth, "depth", envInt("CHESSCORE_DEPTH", 4), "perft depth")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "positions counted in parallel")
	flag.StringVar(&suiteName, "suite", "builtin", "position suite: builtin or startpos")
	flag.StringVar(&dbDir, "db", "", "bench history database directory (default: data dir)")
	flag.BoolVar(&noStore, "nostore", false, "do not compare with or record run history")
	flag.StringVar(&pngDir, "png", "", "write a PNG of every suite position into this directory")
	flag.Parse()

	if err := run(depth, workers, suiteName, dbDir, noStore, pngDir); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

var errMismatch = errors.New("node count mismatch")

func run(depth, workers int, suiteName, dbDir string, noStore bool, pngDir string) error {
	if depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", depth)
	}
	suite, err := suiteByName(suiteName)
	if err != nil {
		return err
	}

	if pngDir != "" {
		if err := writeBoards(suite, pngDir); err != nil {
			return err
		}
	}

	var store *storage.Store
	if !noStore {
		if dbDir != "" {
			store, err = storage.Open(dbDir)
		} else {
			store, err = storage.OpenDefault()
		}
		if err != nil {
			return fmt.Errorf("open bench history: %w", err)
		}
		defer store.Close()
	}

	gen := movegen.New()
	log.Printf("bench started: %d positions, depth %d, %d workers", len(suite), depth, workers)
	runs, err := runSuite(context.Background(), gen, suite, depth, workers)
	if err != nil {
		return err
	}

	var total uint64
	var failed bool
	for i, r := range runs {
		total += r.Nodes
		status := "ok"
		if !r.Matches() {
			status = fmt.Sprintf("MISMATCH (want %d)", r.Expected)
			failed = true
		}
		fmt.Printf("%-12s %12d nodes %10v %12.0f nps  %s\n",
			suite[i].Name, r.Nodes, r.Elapsed.Round(time.Microsecond), r.NPS(), status)

		if store == nil {
			continue
		}
		if prev, err := store.LastRun(r.FEN, r.Depth); err == nil {
			if prev.Nodes != r.Nodes {
				fmt.Printf("%-12s changed since %s: %d -> %d nodes\n",
					"", prev.At.Format("2006-01-02 15:04"), prev.Nodes, r.Nodes)
			}
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if err := store.SaveRun(r); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}
	fmt.Printf("total %d nodes\n", total)

	if failed {
		return errMismatch
	}
	return nil
}

func writeBoards(suite []benchPosition, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, p := range suite {
		b, err := board.ParseFEN(p.FEN)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		if err := render.SavePNG(filepath.Join(dir, p.Name+".png"), b, 480); err != nil {
			return err
		}
	}
	return nil
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}
