// Package backend opens the configured storage backend.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/internal/storage/badger"
	"github.com/mmynk/messbook/internal/storage/memory"
	"github.com/mmynk/messbook/internal/storage/sqlite"
)

// Backend names.
const (
	SQLite = "sqlite"
	Badger = "badger"
	Memory = "memory"
)

// Options selects and locates a backend.
type Options struct {
	Kind       string
	DBPath     string
	BadgerPath string
	Logger     *slog.Logger
}

// Open returns a ready store. SQLite databases are migrated on open.
func Open(opts Options) (storage.Store, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	switch opts.Kind {
	case SQLite, "":
		store, err := sqlite.New(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		log.Info("Storage initialized", "backend", SQLite, "database", opts.DBPath)
		return store, nil
	case Badger:
		store, err := badger.Open(opts.BadgerPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		log.Info("Storage initialized", "backend", Badger, "dir", opts.BadgerPath)
		return store, nil
	case Memory:
		log.Warn("Storage initialized in memory; data is lost on exit", "backend", Memory)
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}
