// Package store persists the named record collections. Records are keyed
// JSON documents with a revision stamp; writers replace a record by key with
// a compare-and-swap on the revision, so two writers racing on the same
// record cannot silently drop each other's update.
package store

import "errors"

// Collection names.
const (
	CollectionProjects = "projects"
	CollectionUsers    = "users"
)

var (
	// ErrNotFound is returned when a key has no record in the collection.
	ErrNotFound = errors.New("store: record not found")
	// ErrRevisionConflict is returned when a Put's expected revision no
	// longer matches the stored record.
	ErrRevisionConflict = errors.New("store: revision conflict")
)

// Record is one stored entry of a collection.
type Record struct {
	Key      string
	Revision int64
	Data     []byte
}

// Store is the persistence boundary. Load never fails: an unavailable
// backend or a corrupt payload yields the empty (or partial) safe default,
// so every reader starts from "no records" rather than an error. Writes
// report their failures.
type Store interface {
	// Load returns all records of a collection in insertion order.
	Load(collection string) []Record
	// SaveAll atomically overwrites a whole collection.
	SaveAll(collection string, records []Record) error
	// Get returns the record for key, or ErrNotFound.
	Get(collection, key string) (Record, error)
	// Put writes data under key. expectedRevision 0 creates the record and
	// fails with ErrRevisionConflict if it already exists; a non-zero
	// expectedRevision replaces the record only if the stored revision still
	// matches, returning the new revision.
	Put(collection, key string, data []byte, expectedRevision int64) (int64, error)
}
