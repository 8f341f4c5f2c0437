package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/middleware"
	"github.com/makerport/makerport/internal/services"
	"github.com/makerport/makerport/pkg/response"
)

type AuthHandler struct {
	auth     *services.AuthService
	sessions *services.SessionManager
}

func NewAuthHandler(auth *services.AuthService, sessions *services.SessionManager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type mockLoginRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// LoginMock signs in as one of the seeded demo identities
// POST /api/auth/login/mock
func (h *AuthHandler) LoginMock(c *gin.Context) {
	var req mockLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.auth.LoginMock(req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// LoginExternal signs in from an external provider profile
// POST /api/auth/login/external
func (h *AuthHandler) LoginExternal(c *gin.Context) {
	var profile services.ExternalProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.auth.LoginExternal(profile)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// Register creates a local password account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.auth.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			response.Conflict(c, "username already taken")
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Login authenticates a local password account
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.auth.LoginLocal(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// Me returns the current signed-in user
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, ok := h.sessions.CurrentUser(userID)
	if !ok {
		response.Unauthorized(c, "no active session")
		return
	}
	response.Success(c, user)
}

// Logout closes the current session
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(middleware.GetUserID(c))
	response.Success(c, gin.H{"message": "logged out successfully"})
}
