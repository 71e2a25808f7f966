// Package dummystore provides an in-memory record.Store for tests and the
// admin CLI's dry mode.
package dummystore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mnogodumalon/kurs96/core/record"
)

type Store struct {
	mu   sync.RWMutex
	apps map[string]map[string]record.Record // appID -> recordID -> record
}

var _ record.Store = (*Store)(nil) // interface compliance check

func Open() *Store {
	return &Store{apps: make(map[string]map[string]record.Record)}
}

func (db *Store) List(_ context.Context, appID string) ([]record.Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	recs := make([]record.Record, 0, len(db.apps[appID]))
	for _, rec := range db.apps[appID] {
		recs = append(recs, copyRecord(rec))
	}
	// the real backend's ordering is unspecified; sort for deterministic tests
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (db *Store) Get(_ context.Context, appID, recordID string) (record.Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if rec, ok := db.apps[appID][recordID]; ok {
		return copyRecord(rec), nil
	}
	return record.Record{}, record.ErrNotFound
}

func (db *Store) Create(_ context.Context, appID string, fields map[string]interface{}) (record.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.apps[appID] == nil {
		db.apps[appID] = make(map[string]record.Record)
	}
	rec := copyRecord(record.Record{ID: uuid.NewString(), Fields: fields})
	db.apps[appID][rec.ID] = rec
	return copyRecord(rec), nil
}

func (db *Store) Update(_ context.Context, appID, recordID string, fields map[string]interface{}) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.apps[appID][recordID]; !ok {
		return record.ErrNotFound
	}
	db.apps[appID][recordID] = copyRecord(record.Record{ID: recordID, Fields: fields})
	return nil
}

func (db *Store) Delete(_ context.Context, appID, recordID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.apps[appID][recordID]; !ok {
		return record.ErrNotFound
	}
	delete(db.apps[appID], recordID)
	return nil
}

func copyRecord(rec record.Record) record.Record {
	fields := make(map[string]interface{}, len(rec.Fields))
	for k, v := range rec.Fields {
		fields[k] = v
	}
	return record.Record{ID: rec.ID, Fields: fields}
}
