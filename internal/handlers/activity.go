package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/services"
	"github.com/makerport/makerport/pkg/response"
)

type ActivityHandler struct {
	activity *services.ActivityService
}

func NewActivityHandler(activity *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List returns the recent activity feed, newest first
// GET /api/activity
func (h *ActivityHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.activity.List(limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

// ListForProject returns one project's recent activity
// GET /api/activity/projects/:id
func (h *ActivityHandler) ListForProject(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.activity.ListForProject(c.Param("id"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}
