package store

import (
	"encoding/json"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/pkg/logger"
)

// mutateRetries bounds the re-read/retry loop on revision conflicts.
const mutateRetries = 5

// Projects is the typed view over the projects collection.
type Projects struct {
	s Store
}

func NewProjects(s Store) *Projects {
	return &Projects{s: s}
}

// All returns every stored project in insertion order. Records that fail to
// decode are skipped so one bad payload never hides the rest.
func (p *Projects) All() []models.ProjectRecord {
	recs := p.s.Load(CollectionProjects)
	out := make([]models.ProjectRecord, 0, len(recs))
	for _, rec := range recs {
		var proj models.ProjectRecord
		if err := json.Unmarshal(rec.Data, &proj); err != nil {
			logger.Warn().Err(err).Str("key", rec.Key).Msg("skipping undecodable project record")
			continue
		}
		out = append(out, proj)
	}
	return out
}

// Completed returns the projects visible in the public portfolio.
func (p *Projects) Completed() []models.ProjectRecord {
	var out []models.ProjectRecord
	for _, proj := range p.All() {
		if proj.Status == models.StatusCompleted {
			out = append(out, proj)
		}
	}
	return out
}

// Get returns a project and its current revision.
func (p *Projects) Get(id string) (models.ProjectRecord, int64, error) {
	rec, err := p.s.Get(CollectionProjects, id)
	if err != nil {
		return models.ProjectRecord{}, 0, err
	}
	var proj models.ProjectRecord
	if err := json.Unmarshal(rec.Data, &proj); err != nil {
		return models.ProjectRecord{}, 0, err
	}
	return proj, rec.Revision, nil
}

// Save writes a project at the given revision (0 creates it) and returns the
// new revision.
func (p *Projects) Save(proj models.ProjectRecord, revision int64) (int64, error) {
	data, err := json.Marshal(proj)
	if err != nil {
		return 0, err
	}
	return p.s.Put(CollectionProjects, proj.ID, data, revision)
}

// Mutate applies fn to the stored project under a compare-and-swap loop.
// When the record does not exist yet, fn receives a zero record carrying only
// the id, and the write creates it — the "replace-or-append by id" commit.
func (p *Projects) Mutate(id string, fn func(*models.ProjectRecord) error) (models.ProjectRecord, error) {
	var last error
	for i := 0; i < mutateRetries; i++ {
		proj, rev, err := p.Get(id)
		if err == ErrNotFound {
			proj = models.ProjectRecord{ID: id}
			rev = 0
		} else if err != nil {
			return models.ProjectRecord{}, err
		}

		if err := fn(&proj); err != nil {
			return models.ProjectRecord{}, err
		}
		proj.ID = id

		if _, err := p.Save(proj, rev); err != nil {
			if err == ErrRevisionConflict {
				last = err
				continue
			}
			return models.ProjectRecord{}, err
		}
		return proj, nil
	}
	return models.ProjectRecord{}, last
}
