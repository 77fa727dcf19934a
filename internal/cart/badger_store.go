package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const slotKeyPrefix = "cart:"

// badgerStore implements Store on BadgerDB, giving session carts the same
// durability the browser storefront got from localStorage.
type badgerStore struct {
	db     *badger.DB
	logger zerolog.Logger
}

// NewBadgerStore opens (or creates) a BadgerDB at dir and returns a Store
// backed by it.
func NewBadgerStore(dir string, logger zerolog.Logger) (Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store at %s: %w", dir, err)
	}

	logger = logger.With().Str("component", "cart-store").Logger()
	logger.Info().Str("dir", dir).Msg("cart store opened")

	return &badgerStore{db: db, logger: logger}, nil
}

// Get returns the serialised cart for the key, or ErrNotFound.
func (s *badgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(slotKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read cart slot")
		return nil, fmt.Errorf("failed to read cart slot: %w", err)
	}

	return value, nil
}

// Put overwrites the slot for the key.
func (s *badgerStore) Put(ctx context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(slotKeyPrefix+key), value)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write cart slot")
		return fmt.Errorf("failed to write cart slot: %w", err)
	}
	return nil
}

// Delete removes the slot. Deleting an absent key is not an error.
func (s *badgerStore) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(slotKeyPrefix + key))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete cart slot")
		return fmt.Errorf("failed to delete cart slot: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *badgerStore) Close() error {
	return s.db.Close()
}
