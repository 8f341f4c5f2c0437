package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/middleware"
	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/services"
	"github.com/makerport/makerport/internal/store"
	"github.com/makerport/makerport/pkg/response"
)

type PortfolioHandler struct {
	projects *store.Projects
	social   *services.SocialEngine
	catalog  *services.Catalog
}

func NewPortfolioHandler(projects *store.Projects, social *services.SocialEngine, catalog *services.Catalog) *PortfolioHandler {
	return &PortfolioHandler{projects: projects, social: social, catalog: catalog}
}

// List returns all completed projects
// GET /api/portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	response.Success(c, h.projects.Completed())
}

// Get returns one project and records the visit. Every request counts as a
// view.
// GET /api/portfolio/:id
func (h *PortfolioHandler) Get(c *gin.Context) {
	id := c.Param("id")

	rec, _, err := h.projects.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c, "project not found")
			return
		}
		response.Error(c, err)
		return
	}

	views, err := h.social.RecordView(id)
	if err == nil {
		rec.Views = views
	}

	// Comments render newest first
	comments := make([]models.Comment, len(rec.Social.Comments))
	for i, cm := range rec.Social.Comments {
		comments[len(comments)-1-i] = cm
	}

	response.Success(c, gin.H{
		"project":  rec,
		"comments": comments,
	})
}

type reactionRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// React increments a reaction counter. Anonymous visitors may react; only
// signed-in actors earn points.
// POST /api/portfolio/:id/reactions
func (h *PortfolioHandler) React(c *gin.Context) {
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reactions, err := h.social.RecordReaction(c.Param("id"), req.Kind, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUnknownReaction) {
			response.BadRequest(c, "unknown reaction kind")
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, reactions)
}

type commentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// Comment appends a comment. A visitor without a session gets a silent
// no-op: nothing is stored and the response reports recorded=false.
// POST /api/portfolio/:id/comments
func (h *PortfolioHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.social.AddComment(c.Param("id"), middleware.GetUserID(c), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			response.Success(c, gin.H{"recorded": false})
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"recorded": true, "comment": comment})
}

type awardRequest struct {
	AwardID string `json:"award_id" binding:"required"`
}

// Award gifts an award to the project. The same award can be gifted again
// and stacks.
// POST /api/portfolio/:id/awards
func (h *PortfolioHandler) Award(c *gin.Context) {
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rec, err := h.social.AwardProject(c.Param("id"), req.AwardID, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotSignedIn):
			response.Success(c, gin.H{"recorded": false})
		case errors.Is(err, services.ErrUnknownAward):
			response.BadRequest(c, "unknown award")
		default:
			response.Error(c, err)
		}
		return
	}
	response.Success(c, gin.H{"recorded": true, "project": rec})
}

type madeItRequest struct {
	Photo string `json:"photo" binding:"required"`
}

// MadeIt attaches an "I made it" photo
// POST /api/portfolio/:id/made-it
func (h *PortfolioHandler) MadeIt(c *gin.Context) {
	var req madeItRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rec, err := h.social.AddMadeItPhoto(c.Param("id"), middleware.GetUserID(c), req.Photo)
	if err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			response.Success(c, gin.H{"recorded": false})
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"recorded": true, "project": rec})
}

// Awards lists the giftable award catalog
// GET /api/portfolio/awards
func (h *PortfolioHandler) Awards(c *gin.Context) {
	response.Success(c, h.catalog.Awards())
}
