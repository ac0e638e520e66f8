package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Storage keys
const (
	keySettings  = "settings"
	keyRunPrefix = "run/"
)

// Settings stores engine options that outlive one session.
type Settings struct {
	Depth int `json:"depth"`
}

// DefaultSettings returns the settings used before any are saved.
func DefaultSettings() Settings {
	return Settings{Depth: 5}
}

// BenchRun records one node-count benchmark of a position.
type BenchRun struct {
	FEN      string        `json:"fen"`
	Depth    int           `json:"depth"`
	Nodes    uint64        `json:"nodes"`
	Expected uint64        `json:"expected,omitempty"` // reference count, 0 if unknown
	Elapsed  time.Duration `json:"elapsed"`
	At       time.Time     `json:"at"`
}

// Matches reports whether the node count agrees with the reference count.
// Runs without a reference always match.
func (r BenchRun) Matches() bool {
	return r.Expected == 0 || r.Nodes == r.Expected
}

// NPS returns nodes per second.
func (r BenchRun) NPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Elapsed.Seconds()
}

// Store wraps BadgerDB for bench history and settings.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// OpenInMemory opens a store that is discarded on Close.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSettings saves engine settings
func (s *Store) SaveSettings(st Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySettings), data)
	})
}

// LoadSettings loads engine settings, returns defaults if not found
func (s *Store) LoadSettings() (Settings, error) {
	st := DefaultSettings()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySettings))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &st)
		})
	})

	return st, err
}

// runPrefix is the key prefix shared by all runs of one position and depth:
// run/<depth>/<len(fen)>:<fen>/. FENs contain '/', so the length keeps one
// FEN's prefix from matching the keys of a longer one.
func runPrefix(fen string, depth int) []byte {
	return fmt.Appendf(nil, "%s%d/%d:%s/", keyRunPrefix, depth, len(fen), fen)
}

// runKey orders runs chronologically under their prefix.
func runKey(r BenchRun) []byte {
	return fmt.Appendf(runPrefix(r.FEN, r.Depth), "%020d", r.At.UnixNano())
}

// SaveRun stores a bench run. A zero At is set to the current time.
func (s *Store) SaveRun(r BenchRun) error {
	if r.At.IsZero() {
		r.At = time.Now()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(r), data)
	})
}

// LastRun returns the most recent run of fen at depth, or ErrNotFound.
func (s *Store) LastRun(fen string, depth int) (BenchRun, error) {
	var run BenchRun
	prefix := runPrefix(fen, depth)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek(append(bytes.Clone(prefix), 0xFF))
		if !it.ValidForPrefix(prefix) {
			return ErrNotFound
		}
		return it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &run)
		})
	})

	return run, err
}

// Runs returns every stored run of fen at depth, oldest first.
func (s *Store) Runs(fen string, depth int) ([]BenchRun, error) {
	var runs []BenchRun
	prefix := runPrefix(fen, depth)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r BenchRun
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return err
			}
			runs = append(runs, r)
		}
		return nil
	})

	return runs, err
}
