package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jared-cannon/app-registry/internal/models"
	"github.com/jared-cannon/app-registry/internal/storage"
)

// RecordStore reads and writes the whole application list in one storage slot.
//
// Prepend is read-modify-write without locking. Two writers racing on the same
// slot lose one of the submissions (last writer wins).
type RecordStore struct {
	kv   storage.KeyValueStore
	slot string
}

// NewRecordStore creates a record store bound to slot
func NewRecordStore(kv storage.KeyValueStore, slot string) *RecordStore {
	return &RecordStore{kv: kv, slot: slot}
}

// Slot returns the storage slot this store is bound to
func (s *RecordStore) Slot() string {
	return s.slot
}

// LoadAll returns the stored list, newest first. A missing, unreadable or
// corrupt slot yields an empty list; the failure is logged, never returned.
func (s *RecordStore) LoadAll() models.AppList {
	raw, err := s.kv.Get(s.slot)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[Store] Failed to read slot %s: %v", s.slot, err)
		}
		return models.AppList{}
	}
	if raw == "" {
		return models.AppList{}
	}

	var list models.AppList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Printf("[Store] Failed to parse slot %s, treating as empty: %v", s.slot, err)
		return models.AppList{}
	}
	if list == nil {
		return models.AppList{}
	}
	return list
}

// SaveAll overwrites the slot with list
func (s *RecordStore) SaveAll(list models.AppList) error {
	if list == nil {
		list = models.AppList{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode application list: %w", err)
	}

	if err := s.kv.Set(s.slot, string(data)); err != nil {
		return fmt.Errorf("failed to save application list: %w", err)
	}
	return nil
}

// Prepend stores record at index 0 ahead of the current list
func (s *RecordStore) Prepend(record models.AppRecord) error {
	return s.SaveAll(s.LoadAll().Prepend(record))
}
