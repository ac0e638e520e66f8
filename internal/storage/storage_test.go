package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettings(t *testing.T) {
	s := openTest(t)

	t.Run("defaults", func(t *testing.T) {
		st, err := s.LoadSettings()
		if err != nil {
			t.Fatal(err)
		}
		if st != DefaultSettings() {
			t.Errorf("LoadSettings = %+v, want defaults %+v", st, DefaultSettings())
		}
	})

	t.Run("save and load", func(t *testing.T) {
		if err := s.SaveSettings(Settings{Depth: 7}); err != nil {
			t.Fatal(err)
		}
		st, err := s.LoadSettings()
		if err != nil {
			t.Fatal(err)
		}
		if st.Depth != 7 {
			t.Errorf("Depth = %d, want 7", st.Depth)
		}
	})
}

func TestBenchRuns(t *testing.T) {
	s := openTest(t)

	if _, err := s.LastRun(startFEN, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LastRun on empty store: err = %v, want ErrNotFound", err)
	}

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, nodes := range []uint64{8902, 8902, 8901} {
		err := s.SaveRun(BenchRun{
			FEN:      startFEN,
			Depth:    3,
			Nodes:    nodes,
			Expected: 8902,
			Elapsed:  time.Duration(i+1) * time.Millisecond,
			At:       base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	// Same position at another depth must not mix in.
	if err := s.SaveRun(BenchRun{FEN: startFEN, Depth: 2, Nodes: 400, At: base.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	runs, err := s.Runs(startFEN, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("Runs returned %d runs, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if !runs[i].At.After(runs[i-1].At) {
			t.Errorf("runs out of order: %v then %v", runs[i-1].At, runs[i].At)
		}
	}

	last, err := s.LastRun(startFEN, 3)
	if err != nil {
		t.Fatal(err)
	}
	if last.Nodes != 8901 || !last.At.Equal(base.Add(2*time.Minute)) {
		t.Errorf("LastRun = %+v", last)
	}
	if last.Matches() {
		t.Error("8901 != 8902 should not match")
	}
	if !runs[0].Matches() {
		t.Error("first run should match its reference")
	}

	if got := (BenchRun{Nodes: 5000, Elapsed: 2 * time.Second}).NPS(); got != 2500 {
		t.Errorf("NPS = %v, want 2500", got)
	}
	if got := (BenchRun{Nodes: 5000}).NPS(); got != 0 {
		t.Errorf("NPS without elapsed time = %v, want 0", got)
	}
}

func TestSaveRunStampsTime(t *testing.T) {
	s := openTest(t)
	before := time.Now()
	if err := s.SaveRun(BenchRun{FEN: startFEN, Depth: 1, Nodes: 20}); err != nil {
		t.Fatal(err)
	}
	last, err := s.LastRun(startFEN, 1)
	if err != nil {
		t.Fatal(err)
	}
	if last.At.Before(before.Add(-time.Second)) {
		t.Errorf("At = %v, expected around %v", last.At, before)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSettings(Settings{Depth: 4}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	st, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if st.Depth != 4 {
		t.Errorf("Depth after reopen = %d, want 4", st.Depth)
	}
}

func TestDataPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, dir)

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dataDir != dir {
		t.Errorf("DataDir = %s, want %s", dataDir, dir)
	}

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatalf("DatabaseDir failed: %v", err)
	}
	if dbDir != filepath.Join(dir, "db") {
		t.Errorf("DatabaseDir = %s", dbDir)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}

func TestRunKeysDoNotOverlap(t *testing.T) {
	s := openTest(t)

	// Each FEN is the previous one plus a "/<depth>" suffix.
	saved := []BenchRun{
		{FEN: "8/8", Depth: 1, Nodes: 10},
		{FEN: "8/8/1", Depth: 2, Nodes: 20},
		{FEN: "8/8/1", Depth: 1, Nodes: 30},
	}
	for _, r := range saved {
		if err := s.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	for _, want := range saved {
		runs, err := s.Runs(want.FEN, want.Depth)
		if err != nil {
			t.Fatalf("Runs(%q, %d): %v", want.FEN, want.Depth, err)
		}
		if len(runs) != 1 || runs[0].Nodes != want.Nodes {
			t.Errorf("Runs(%q, %d) = %+v, want only the %d-node run", want.FEN, want.Depth, runs, want.Nodes)
		}
		last, err := s.LastRun(want.FEN, want.Depth)
		if err != nil || last.Nodes != want.Nodes {
			t.Errorf("LastRun(%q, %d) = %d nodes, %v; want %d", want.FEN, want.Depth, last.Nodes, err, want.Nodes)
		}
	}
}
