package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/services"
	"github.com/makerport/makerport/pkg/response"
)

type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
	catalog     *services.Catalog
}

func NewLeaderboardHandler(leaderboard *services.LeaderboardService, catalog *services.Catalog) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard, catalog: catalog}
}

// Top returns the highest-scoring makers
// GET /api/leaderboard
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	response.Success(c, h.leaderboard.Top(limit))
}

// Badges lists the badge catalog
// GET /api/leaderboard/badges
func (h *LeaderboardHandler) Badges(c *gin.Context) {
	response.Success(c, h.catalog.Badges())
}

// UserBadges returns one user's earned badges, resolved against the catalog
// GET /api/leaderboard/users/:id/badges
func (h *LeaderboardHandler) UserBadges(c *gin.Context) {
	response.Success(c, h.leaderboard.UserBadges(c.Param("id")))
}
