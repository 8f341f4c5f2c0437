package services

import (
	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/pkg/logger"
)

// Application views a navigate event can target.
const (
	ViewLanding   = "landing"
	ViewDashboard = "dashboard"
	ViewEditor    = "editor"
	ViewPortfolio = "portfolio"
)

// NavigateFunc steers connected clients to a view after a publish.
type NavigateFunc func(view, projectID string)

// PublishService turns a draft into a completed, publicly visible project.
type PublishService struct {
	editor   *EditorService
	navigate NavigateFunc
}

// NewPublishService creates the publish workflow. navigate may be nil.
func NewPublishService(editor *EditorService, navigate NavigateFunc) *PublishService {
	return &PublishService{editor: editor, navigate: navigate}
}

// Publish commits the session's draft immediately with completed status,
// bypassing the debounce window. Navigation fires only when the commit
// succeeds; on failure the caller stays in the editor with the session
// intact.
func (s *PublishService) Publish(sessionID string) (models.ProjectRecord, error) {
	session, err := s.editor.Get(sessionID)
	if err != nil {
		return models.ProjectRecord{}, err
	}

	draft := session.Autosave.Draft()
	draft.Status = models.StatusCompleted
	session.Autosave.Update(draft)

	rec, err := session.Autosave.Flush()
	if err != nil {
		logger.Error().Err(err).Str("session_id", sessionID).Msg("publish commit failed")
		return models.ProjectRecord{}, err
	}

	logger.Info().Str("project_id", rec.ID).Str("title", rec.Title).Msg("project published")

	if s.navigate != nil {
		s.navigate(ViewPortfolio, rec.ID)
	}
	return rec, nil
}
