package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
	"github.com/makerport/makerport/pkg/logger"
)

// SaveState is the editor's saving indicator. Saving holds for at least the
// configured display floor so rapid commits still flash visibly. LastError
// carries the most recent commit failure and clears on the next success.
type SaveState struct {
	Saving    bool      `json:"saving"`
	LastSaved time.Time `json:"last_saved,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// AutosaveCoordinator debounces edits to a single draft and commits them to
// the projects collection. Every Update cancels and rearms the timer, so a
// continuous edit stream produces one commit per quiet window. Pending edits
// are discarded on Close.
type AutosaveCoordinator struct {
	mu        sync.Mutex
	projects  *store.Projects
	hub       *Hub
	debounce  time.Duration
	floor     time.Duration
	draft     models.ProjectRecord
	dirty     bool
	timer     *time.Timer
	closed    bool
	saving    bool
	lastSaved time.Time
	lastError string
	onState   func(SaveState)
}

// NewAutosaveCoordinator creates a coordinator for one editing session.
// onState, when non-nil, receives every saving-indicator transition; hub may
// be nil in tests.
func NewAutosaveCoordinator(projects *store.Projects, hub *Hub, debounce, floor time.Duration, onState func(SaveState)) *AutosaveCoordinator {
	return &AutosaveCoordinator{
		projects: projects,
		hub:      hub,
		debounce: debounce,
		floor:    floor,
		onState:  onState,
	}
}

// seed installs the initial working copy without arming the timer. Opening
// an existing project must not immediately rewrite it.
func (a *AutosaveCoordinator) seed(draft models.ProjectRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft = draft.Clone()
}

// Update replaces the working copy and rearms the debounce timer. The draft
// keeps its identity: the id is minted on the first update and every later
// commit reuses it, so repeated saves replace rather than append. An id
// carried by the incoming draft is ignored; the session, not the caller,
// owns the project's identity.
func (a *AutosaveCoordinator) Update(draft models.ProjectRecord) models.ProjectRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return draft
	}

	if a.draft.ID != "" {
		draft.ID = a.draft.ID
	} else {
		draft.ID = uuid.NewString()
	}

	a.draft = draft.Clone()
	a.dirty = true

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.commitDebounced)

	return draft
}

// Flush cancels any pending timer and commits the working copy immediately.
// The saving indicator is not raised; the floor only applies to debounced
// commits. Returns the committed record.
func (a *AutosaveCoordinator) Flush() (models.ProjectRecord, error) {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.closed || !a.dirty {
		draft := a.draft
		a.mu.Unlock()
		return draft, nil
	}
	snapshot := a.draft.Clone()
	a.dirty = false
	a.mu.Unlock()

	rec, err := a.commit(snapshot)
	if err != nil {
		return models.ProjectRecord{}, err
	}

	a.mu.Lock()
	a.lastSaved = time.Now()
	a.lastError = ""
	a.mu.Unlock()

	return rec, nil
}

// Close tears the session down. A pending debounced commit is cancelled and
// its edits are discarded, never written.
func (a *AutosaveCoordinator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.dirty = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// State returns the current saving indicator.
func (a *AutosaveCoordinator) State() SaveState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return SaveState{Saving: a.saving, LastSaved: a.lastSaved, LastError: a.lastError}
}

// Draft returns a copy of the current working copy.
func (a *AutosaveCoordinator) Draft() models.ProjectRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draft.Clone()
}

func (a *AutosaveCoordinator) commitDebounced() {
	a.mu.Lock()
	if a.closed || !a.dirty {
		a.mu.Unlock()
		return
	}
	snapshot := a.draft.Clone()
	a.dirty = false
	a.saving = true
	a.notifyLocked()
	a.mu.Unlock()

	started := time.Now()
	_, err := a.commit(snapshot)
	if err != nil {
		logger.Error().Err(err).Str("project_id", snapshot.ID).Msg("autosave commit failed")
	}

	// Hold the indicator up to the display floor
	if remaining := a.floor - time.Since(started); remaining > 0 {
		time.Sleep(remaining)
	}

	a.mu.Lock()
	a.saving = false
	if err == nil {
		a.lastSaved = time.Now()
		a.lastError = ""
	} else {
		a.lastError = err.Error()
	}
	a.notifyLocked()
	a.mu.Unlock()
}

// commit writes the snapshot, stamping LastEdited and defaulting the status.
// Socially-mutated fields on the stored record survive the write.
func (a *AutosaveCoordinator) commit(snapshot models.ProjectRecord) (models.ProjectRecord, error) {
	snapshot.LastEdited = time.Now()
	if snapshot.Status == "" {
		snapshot.Status = models.StatusDraft
	}

	rec, err := a.projects.Mutate(snapshot.ID, func(p *models.ProjectRecord) error {
		snapshot.ApplyEditorFields(p)
		return nil
	})
	if err != nil {
		return models.ProjectRecord{}, err
	}

	if a.hub != nil {
		a.hub.PublishChange(store.CollectionProjects, rec.ID, "save")
	}
	return rec, nil
}

func (a *AutosaveCoordinator) notifyLocked() {
	if a.onState != nil {
		a.onState(SaveState{Saving: a.saving, LastSaved: a.lastSaved, LastError: a.lastError})
	}
}
