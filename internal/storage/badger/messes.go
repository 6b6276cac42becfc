package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/mmynk/messbook/internal/models"
)

func messKey(id string) string        { return "mess:" + id }
func codeKey(code string) string      { return "code:" + code }
func memberKey(user string) string    { return "member:" + user }
func rosterPrefix(mess string) string { return "roster:" + mess + ":" }

// CreateMess stores the mess and claims its join code in one transaction.
func (s *BadgerStore) CreateMess(ctx context.Context, mess *models.Mess) error {
	if mess.ID == "" {
		mess.ID = uuid.New().String()
	}
	if mess.CreatedAt == 0 {
		mess.CreatedAt = time.Now().Unix()
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(codeKey(mess.Code)))
		if err == nil {
			return &models.ConflictError{Resource: "mess", Err: fmt.Errorf("code %s already in use", mess.Code)}
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set([]byte(codeKey(mess.Code)), []byte(mess.ID)); err != nil {
			return err
		}
		return setJSON(txn, messKey(mess.ID), fromMess(*mess))
	})
	if err != nil {
		return fmt.Errorf("failed to create mess: %w", mapError("mess", err))
	}
	return nil
}

// DeleteMess drops the mess, its code claim, its roster and every ledger key
// under the mess in one transaction.
func (s *BadgerStore) DeleteMess(ctx context.Context, messID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		var rec messRecord
		if err := getJSON(txn, messKey(messID), &rec); err != nil {
			return err
		}

		keys := []string{messKey(messID), codeKey(rec.Code)}
		roster := rosterPrefix(messID)
		for _, prefix := range []string{roster, mealPrefix(messID), depositPrefix(messID), costPrefix(messID)} {
			found := prefixKeys(txn, prefix)
			if prefix == roster {
				for _, key := range found {
					keys = append(keys, memberKey(strings.TrimPrefix(key, roster)))
				}
			}
			keys = append(keys, found...)
		}

		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return &models.NotFoundError{Kind: "mess", ID: messID}
	}
	if err != nil {
		return fmt.Errorf("failed to delete mess: %w", mapError("mess", err))
	}
	return nil
}

func prefixKeys(txn *badger.Txn, prefix string) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys []string
	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		keys = append(keys, string(it.Item().KeyCopy(nil)))
	}
	return keys
}

// GetMess retrieves a mess by ID.
func (s *BadgerStore) GetMess(ctx context.Context, messID string) (*models.Mess, error) {
	var rec messRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, messKey(messID), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &models.NotFoundError{Kind: "mess", ID: messID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mess: %w", err)
	}
	return rec.toModel(), nil
}

// GetMessByCode follows the code index to the mess record.
func (s *BadgerStore) GetMessByCode(ctx context.Context, code string) (*models.Mess, error) {
	var rec messRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(codeKey(code)))
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return getJSON(txn, messKey(string(id)), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &models.NotFoundError{Kind: "mess", ID: code}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mess by code: %w", err)
	}
	return rec.toModel(), nil
}

// AddMember records the membership and its roster index.
func (s *BadgerStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(messKey(member.MessID))); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &models.NotFoundError{Kind: "mess", ID: member.MessID}
			}
			return err
		}

		_, err := txn.Get([]byte(memberKey(member.UserID)))
		if err == nil {
			return &models.ConflictError{Resource: "member", Err: fmt.Errorf("user %s already belongs to a mess", member.UserID)}
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set([]byte(rosterPrefix(member.MessID)+member.UserID), nil); err != nil {
			return err
		}
		return setJSON(txn, memberKey(member.UserID), fromMember(*member))
	})
	if err != nil {
		return fmt.Errorf("failed to add member: %w", mapError("member", err))
	}
	return nil
}

// RemoveMember deletes the membership and its roster index.
func (s *BadgerStore) RemoveMember(ctx context.Context, messID, userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		var rec memberRecord
		if err := getJSON(txn, memberKey(userID), &rec); err != nil {
			return err
		}
		if rec.MessID != messID {
			return badger.ErrKeyNotFound
		}
		if err := txn.Delete([]byte(rosterPrefix(messID) + userID)); err != nil {
			return err
		}
		return txn.Delete([]byte(memberKey(userID)))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return &models.NotFoundError{Kind: "member", ID: userID}
	}
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", mapError("member", err))
	}
	return nil
}

// GetMembership returns the user's current membership.
func (s *BadgerStore) GetMembership(ctx context.Context, userID string) (*models.Member, error) {
	var rec memberRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, memberKey(userID), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &models.NotFoundError{Kind: "member", ID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	m := rec.toModel()
	return &m, nil
}

// ListMembers scans the roster index, ordered by join time.
func (s *BadgerStore) ListMembers(ctx context.Context, messID string) ([]models.Member, error) {
	var members []models.Member
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(rosterPrefix(messID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			userID := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			var rec memberRecord
			if err := getJSON(txn, memberKey(userID), &rec); err != nil {
				return fmt.Errorf("failed to read member %s: %w", userID, err)
			}
			members = append(members, rec.toModel())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	slices.SortStableFunc(members, func(a, b models.Member) int {
		switch {
		case a.JoinedAt < b.JoinedAt:
			return -1
		case a.JoinedAt > b.JoinedAt:
			return 1
		default:
			return strings.Compare(a.UserID, b.UserID)
		}
	})
	return members, nil
}
