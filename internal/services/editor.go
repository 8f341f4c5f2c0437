package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
)

// ErrSessionNotFound is returned for operations on a closed or unknown
// editing session.
var ErrSessionNotFound = errors.New("editing session not found")

// ErrNotProjectAuthor is returned when a user opens a project someone else
// authored.
var ErrNotProjectAuthor = errors.New("not the project author")

// DraftSession is one open editor tab: an author, a working copy and its
// autosave coordinator.
type DraftSession struct {
	ID       string
	AuthorID string
	Autosave *AutosaveCoordinator
	OpenedAt time.Time
}

// EditorService opens and tracks draft sessions.
type EditorService struct {
	mu       sync.Mutex
	projects *store.Projects
	hub      *Hub
	debounce time.Duration
	floor    time.Duration
	sessions map[string]*DraftSession
}

// NewEditorService creates the editor service.
func NewEditorService(projects *store.Projects, hub *Hub, debounce, floor time.Duration) *EditorService {
	return &EditorService{
		projects: projects,
		hub:      hub,
		debounce: debounce,
		floor:    floor,
		sessions: make(map[string]*DraftSession),
	}
}

// Open starts an editing session. When projectID names a stored project its
// record becomes the working copy; otherwise the session starts from a fresh
// default draft. The returned session id addresses all later calls.
func (e *EditorService) Open(projectID, authorID string) (*DraftSession, models.ProjectRecord, error) {
	var draft models.ProjectRecord

	if projectID != "" {
		rec, _, err := e.projects.Get(projectID)
		switch {
		case err == nil:
			if rec.AuthorID != "" && rec.AuthorID != authorID {
				return nil, models.ProjectRecord{}, ErrNotProjectAuthor
			}
			draft = rec.Clone()
		case errors.Is(err, store.ErrNotFound):
			draft = models.ProjectRecord{ID: projectID}
		default:
			return nil, models.ProjectRecord{}, err
		}
	}

	if draft.AuthorID == "" {
		draft.AuthorID = authorID
	}
	draft.Normalize()

	session := &DraftSession{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Autosave: NewAutosaveCoordinator(e.projects, e.hub, e.debounce, e.floor, nil),
		OpenedAt: time.Now(),
	}
	session.Autosave.seed(draft)

	e.mu.Lock()
	e.sessions[session.ID] = session
	e.mu.Unlock()

	return session, draft, nil
}

// UpdateDraft replaces the session's working copy. The draft is normalized
// and stamped with the session's author before it reaches the autosave
// timer; an author or id carried in the incoming draft is discarded.
func (e *EditorService) UpdateDraft(sessionID string, draft models.ProjectRecord) (models.ProjectRecord, error) {
	session, err := e.Get(sessionID)
	if err != nil {
		return models.ProjectRecord{}, err
	}

	draft.AuthorID = session.AuthorID
	draft.Normalize()

	return session.Autosave.Update(draft), nil
}

// Status returns the session's saving indicator.
func (e *EditorService) Status(sessionID string) (SaveState, error) {
	session, err := e.Get(sessionID)
	if err != nil {
		return SaveState{}, err
	}
	return session.Autosave.State(), nil
}

// Close tears the session down, discarding any pending uncommitted edits.
func (e *EditorService) Close(sessionID string) error {
	e.mu.Lock()
	session, ok := e.sessions[sessionID]
	delete(e.sessions, sessionID)
	e.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Autosave.Close()
	return nil
}

// Get returns an open session.
func (e *EditorService) Get(sessionID string) (*DraftSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
