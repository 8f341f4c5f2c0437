package store

import (
	"encoding/json"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/pkg/logger"
)

// Users is the typed view over the users collection.
type Users struct {
	s Store
}

func NewUsers(s Store) *Users {
	return &Users{s: s}
}

// All returns every stored user in insertion order, skipping undecodable
// records.
func (u *Users) All() []models.UserRecord {
	recs := u.s.Load(CollectionUsers)
	out := make([]models.UserRecord, 0, len(recs))
	for _, rec := range recs {
		var user models.UserRecord
		if err := json.Unmarshal(rec.Data, &user); err != nil {
			logger.Warn().Err(err).Str("key", rec.Key).Msg("skipping undecodable user record")
			continue
		}
		out = append(out, user)
	}
	return out
}

// Get returns a user and its current revision.
func (u *Users) Get(id string) (models.UserRecord, int64, error) {
	rec, err := u.s.Get(CollectionUsers, id)
	if err != nil {
		return models.UserRecord{}, 0, err
	}
	var user models.UserRecord
	if err := json.Unmarshal(rec.Data, &user); err != nil {
		return models.UserRecord{}, 0, err
	}
	return user, rec.Revision, nil
}

// Save writes a user at the given revision (0 creates it).
func (u *Users) Save(user models.UserRecord, revision int64) (int64, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return 0, err
	}
	return u.s.Put(CollectionUsers, user.ID, data, revision)
}

// Mutate applies fn to the stored user under a compare-and-swap loop,
// creating the record when absent.
func (u *Users) Mutate(id string, fn func(*models.UserRecord) error) (models.UserRecord, error) {
	var last error
	for i := 0; i < mutateRetries; i++ {
		user, rev, err := u.Get(id)
		if err == ErrNotFound {
			user = models.UserRecord{ID: id}
			rev = 0
		} else if err != nil {
			return models.UserRecord{}, err
		}

		if err := fn(&user); err != nil {
			return models.UserRecord{}, err
		}
		user.ID = id

		if _, err := u.Save(user, rev); err != nil {
			if err == ErrRevisionConflict {
				last = err
				continue
			}
			return models.UserRecord{}, err
		}
		return user, nil
	}
	return models.UserRecord{}, last
}
