package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store for tests and ephemeral runs. It keeps
// the same insertion-order and revision semantics as the database-backed
// implementation.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]Record
	order       map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Record),
		order:       make(map[string][]string),
	}
}

func (s *MemoryStore) Load(collection string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.order[collection]
	recs := s.collections[collection]
	out := make([]Record, 0, len(keys))
	for _, key := range keys {
		rec, ok := recs[key]
		if !ok {
			continue
		}
		if !json.Valid(rec.Data) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	return out
}

func (s *MemoryStore) SaveAll(collection string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make(map[string]Record, len(records))
	keys := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Revision <= 0 {
			rec.Revision = 1
		}
		recs[rec.Key] = cloneRecord(rec)
		keys = append(keys, rec.Key)
	}
	s.collections[collection] = recs
	s.order[collection] = keys
	return nil
}

func (s *MemoryStore) Get(collection, key string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection][key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) Put(collection, key string, data []byte, expectedRevision int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, ok := s.collections[collection]
	if !ok {
		recs = make(map[string]Record)
		s.collections[collection] = recs
	}

	cur, exists := recs[key]
	if expectedRevision == 0 {
		if exists {
			return 0, ErrRevisionConflict
		}
		recs[key] = Record{Key: key, Revision: 1, Data: append([]byte(nil), data...)}
		s.order[collection] = append(s.order[collection], key)
		return 1, nil
	}

	if !exists || cur.Revision != expectedRevision {
		return 0, ErrRevisionConflict
	}
	newRev := expectedRevision + 1
	recs[key] = Record{Key: key, Revision: newRev, Data: append([]byte(nil), data...)}
	return newRev, nil
}

// Corrupt overwrites a record's payload with invalid JSON, bypassing the
// revision check. Test helper for the corrupt-row tolerance path.
func (s *MemoryStore) Corrupt(collection, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.collections[collection][key]; ok {
		rec.Data = []byte("{not json")
		s.collections[collection][key] = rec
	}
}

func cloneRecord(rec Record) Record {
	rec.Data = append([]byte(nil), rec.Data...)
	return rec
}
