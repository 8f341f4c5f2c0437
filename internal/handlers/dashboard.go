package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/middleware"
	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
	"github.com/makerport/makerport/pkg/response"
)

type DashboardHandler struct {
	projects *store.Projects
}

func NewDashboardHandler(projects *store.Projects) *DashboardHandler {
	return &DashboardHandler{projects: projects}
}

type dashboardStats struct {
	Total     int `json:"total"`
	Drafts    int `json:"drafts"`
	Completed int `json:"completed"`
	Views     int `json:"views"`
	Loves     int `json:"loves"`
	Awards    int `json:"awards"`
}

// List returns the signed-in user's own projects, drafts included, with
// aggregate stats
// GET /api/dashboard/projects
func (h *DashboardHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var own []models.ProjectRecord
	var stats dashboardStats
	for _, p := range h.projects.All() {
		if p.AuthorID != userID {
			continue
		}
		own = append(own, p)
		stats.Total++
		if p.Status == models.StatusCompleted {
			stats.Completed++
		} else {
			stats.Drafts++
		}
		stats.Views += p.Views
		stats.Loves += p.Reactions.Love
		stats.Awards += len(p.Social.Awards)
	}

	sort.SliceStable(own, func(i, j int) bool {
		return own[i].LastEdited.After(own[j].LastEdited)
	})

	response.Success(c, gin.H{
		"projects": own,
		"stats":    stats,
	})
}
