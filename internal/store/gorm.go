package store

import (
	"encoding/json"
	"errors"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists collections in the documents table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load returns all records of a collection in insertion order. Rows whose
// payload is not valid JSON are skipped; a backend failure yields the empty
// default.
func (s *GormStore) Load(collection string) []Record {
	var docs []models.Document
	if err := s.db.Where("collection = ?", collection).Order("id ASC").Find(&docs).Error; err != nil {
		logger.Warn().Err(err).Str("collection", collection).Msg("load failed, returning empty collection")
		return nil
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		if !json.Valid([]byte(doc.Data)) {
			logger.Warn().Str("collection", collection).Str("key", doc.Key).Msg("skipping corrupt record")
			continue
		}
		records = append(records, Record{
			Key:      doc.Key,
			Revision: doc.Revision,
			Data:     []byte(doc.Data),
		})
	}
	return records
}

// SaveAll overwrites the whole collection in one transaction.
func (s *GormStore) SaveAll(collection string, records []Record) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", collection).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		for _, rec := range records {
			rev := rec.Revision
			if rev <= 0 {
				rev = 1
			}
			doc := models.Document{
				Collection: collection,
				Key:        rec.Key,
				Revision:   rev,
				Data:       string(rec.Data),
			}
			if err := tx.Create(&doc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) Get(collection, key string) (Record, error) {
	var doc models.Document
	err := s.db.Where("collection = ? AND key = ?", collection, key).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return Record{Key: doc.Key, Revision: doc.Revision, Data: []byte(doc.Data)}, nil
}

func (s *GormStore) Put(collection, key string, data []byte, expectedRevision int64) (int64, error) {
	if expectedRevision == 0 {
		doc := models.Document{
			Collection: collection,
			Key:        key,
			Revision:   1,
			Data:       string(data),
		}
		err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&doc).Error
		if err != nil {
			return 0, err
		}
		if doc.ID == 0 {
			// Insert was skipped: the key already exists.
			return 0, ErrRevisionConflict
		}
		return 1, nil
	}

	newRev := expectedRevision + 1
	result := s.db.Model(&models.Document{}).
		Where("collection = ? AND key = ? AND revision = ?", collection, key, expectedRevision).
		Updates(map[string]interface{}{"data": string(data), "revision": newRev})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrRevisionConflict
	}
	return newRev, nil
}
