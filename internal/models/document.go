package models

import "time"

// Document is one persisted record of a named collection. Records are stored
// as JSON payloads keyed by (collection, key); the revision stamp backs the
// store's optimistic concurrency check. Row order (by ID) is insertion order.
type Document struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Collection string    `gorm:"size:100;not null;uniqueIndex:idx_collection_key" json:"collection"`
	Key        string    `gorm:"size:100;not null;uniqueIndex:idx_collection_key" json:"key"`
	Revision   int64     `gorm:"not null;default:1" json:"revision"`
	Data       string    `gorm:"type:text" json:"data"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
