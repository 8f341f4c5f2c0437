package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/middleware"
	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/services"
	"github.com/makerport/makerport/pkg/response"
)

type EditorHandler struct {
	editor  *services.EditorService
	publish *services.PublishService
}

func NewEditorHandler(editor *services.EditorService, publish *services.PublishService) *EditorHandler {
	return &EditorHandler{editor: editor, publish: publish}
}

type openSessionRequest struct {
	ProjectID string `json:"project_id"`
}

// Open starts an editing session for a new or existing project
// POST /api/editor/sessions
func (h *EditorHandler) Open(c *gin.Context) {
	// An empty or absent body opens a fresh draft
	var req openSessionRequest
	_ = c.ShouldBindJSON(&req)

	session, draft, err := h.editor.Open(req.ProjectID, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotProjectAuthor) {
			response.Forbidden(c, "not the project author")
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"session_id": session.ID,
		"draft":      draft,
	})
}

// UpdateDraft replaces the session's working copy; the commit lands after
// the debounce window
// PUT /api/editor/sessions/:id/draft
func (h *EditorHandler) UpdateDraft(c *gin.Context) {
	var draft models.ProjectRecord
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.editor.UpdateDraft(c.Param("id"), draft)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			response.NotFound(c, "editing session not found")
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Status returns the session's saving indicator
// GET /api/editor/sessions/:id/status
func (h *EditorHandler) Status(c *gin.Context) {
	state, err := h.editor.Status(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			response.NotFound(c, "editing session not found")
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// Publish commits the draft immediately as a completed project
// POST /api/editor/sessions/:id/publish
func (h *EditorHandler) Publish(c *gin.Context) {
	rec, err := h.publish.Publish(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			response.NotFound(c, "editing session not found")
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, rec)
}

type posterRequest struct {
	PosterData json.RawMessage `json:"poster_data" binding:"required"`
}

// SetPoster attaches generated poster data to the draft
// POST /api/editor/sessions/:id/poster
func (h *EditorHandler) SetPoster(c *gin.Context) {
	var req posterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.editor.Get(c.Param("id"))
	if err != nil {
		response.NotFound(c, "editing session not found")
		return
	}

	draft := session.Autosave.Draft()
	draft.PosterData = req.PosterData
	updated, err := h.editor.UpdateDraft(session.ID, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Close tears the session down, discarding uncommitted edits
// DELETE /api/editor/sessions/:id
func (h *EditorHandler) Close(c *gin.Context) {
	if err := h.editor.Close(c.Param("id")); err != nil {
		response.NotFound(c, "editing session not found")
		return
	}
	response.Success(c, gin.H{"message": "session closed"})
}
