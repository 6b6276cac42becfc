// Package badger provides a BadgerDB-backed implementation of the storage.Store interface.
//
// Keys are laid out so that a prefix scan returns entries in ledger order:
//
//	mess:{id}                         mess record
//	code:{code}                       mess id
//	member:{user}                     membership record
//	roster:{mess}:{user}              roster index
//	meal:{mess}:{date}:{user}         meal entry
//	dep:{mess}:{date}:{seq}           deposit entry
//	cost:{mess}:{date}:{seq}          cost entry
//
// Dates are YYYY-MM-DD and seq is a zero-padded store-wide sequence, so lexical
// order is date order with insertion order as the tiebreak.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

var _ storage.Store = (*BadgerStore)(nil)

const seqBandwidth = 100

// BadgerStore implements storage.Store on an embedded BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

// Open opens (or creates) a database in dir.
func Open(dir string, log *slog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	store, err := New(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an already opened database. Close closes it.
func New(db *badger.DB, log *slog.Logger) (*BadgerStore, error) {
	seq, err := db.GetSequence([]byte("seq:ledger"), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &BadgerStore{db: db, seq: seq, log: log}, nil
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		s.log.Warn("Failed to release sequence", "error", err)
	}
	return s.db.Close()
}

func mapError(resource string, err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return &models.ConflictError{Resource: resource, Err: err}
	}
	return err
}

func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// scanRange yields the records whose keys start with prefix and whose next ten
// bytes (a YYYY-MM-DD date) fall within period, converted by toModel. The read
// transaction stays open while the caller consumes the sequence.
func scanRange[R, T any](ctx context.Context, db *badger.DB, prefix string, period models.Period, toModel func(R) T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		p := []byte(prefix)
		end := period.End.String()

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			for it.Seek([]byte(prefix + period.Start.String())); it.ValidForPrefix(p); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				item := it.Item()
				key := item.Key()
				if len(key) < len(p)+len(models.DateLayout) {
					continue
				}
				if string(key[len(p):len(p)+len(models.DateLayout)]) > end {
					return nil
				}

				var rec R
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &rec)
				}); err != nil {
					return fmt.Errorf("failed to decode %s: %w", key, err)
				}
				if !yield(toModel(rec), nil) {
					return errStop
				}
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(zero, err)
		}
	}
}

var errStop = errors.New("iteration stopped")
