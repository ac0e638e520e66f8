package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 0, "default search depth (overrides the saved setting)")
	dataDir    = flag.String("data", "", "directory for the settings database")
	noStore    = flag.Bool("nostore", false, "do not load or save settings")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	gen := movegen.New()
	eng := engine.NewEngine(gen)
	protocol := uci.New(eng, gen, os.Stdin, os.Stdout)

	if !*noStore {
		if store, err := openStore(); err != nil {
			log.Printf("Warning: settings not available: %v", err)
		} else {
			defer store.Close()
			if err := protocol.SetSettingsStore(store); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}

	d := *depth
	if d == 0 {
		d, _ = strconv.Atoi(os.Getenv("CHESSCORE_DEPTH"))
	}
	protocol.SetDepth(d)

	if err := protocol.Run(); err != nil {
		log.Printf("uci: %v", err)
	}
}

func openStore() (*storage.Store, error) {
	if *dataDir != "" {
		return storage.Open(*dataDir)
	}
	return storage.OpenDefault()
}
