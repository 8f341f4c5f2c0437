package main

import (
	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/middleware"
	"github.com/makerport/makerport/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public portfolio surface
	publicLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/login/mock", svc.authHandler.LoginMock)
			auth.POST("/login/external", svc.authHandler.LoginExternal)
		}

		// SSE events (public route with internal token validation)
		api.GET("/events", svc.eventsHandler.Stream)

		// Public portfolio: anyone may browse, view and react; identity is
		// resolved when present so signed-in actors earn points
		portfolio := api.Group("/portfolio", publicLimiter.Middleware(), middleware.OptionalAuth())
		{
			portfolio.GET("", svc.portfolioHandler.List)
			portfolio.GET("/awards", svc.portfolioHandler.Awards)
			portfolio.GET("/:id", svc.portfolioHandler.Get)
			portfolio.POST("/:id/reactions", svc.portfolioHandler.React)
			portfolio.POST("/:id/comments", svc.portfolioHandler.Comment)
			portfolio.POST("/:id/awards", svc.portfolioHandler.Award)
			portfolio.POST("/:id/made-it", svc.portfolioHandler.MadeIt)
		}

		// Leaderboard (public)
		leaderboard := api.Group("/leaderboard")
		{
			leaderboard.GET("", svc.leaderboardHandler.Top)
			leaderboard.GET("/badges", svc.leaderboardHandler.Badges)
			leaderboard.GET("/users/:id/badges", svc.leaderboardHandler.UserBadges)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Editor sessions
			protected.POST("/editor/sessions", svc.editorHandler.Open)
			protected.PUT("/editor/sessions/:id/draft", svc.editorHandler.UpdateDraft)
			protected.GET("/editor/sessions/:id/status", svc.editorHandler.Status)
			protected.POST("/editor/sessions/:id/poster", svc.editorHandler.SetPoster)
			protected.POST("/editor/sessions/:id/publish", svc.editorHandler.Publish)
			protected.DELETE("/editor/sessions/:id", svc.editorHandler.Close)

			// Dashboard
			protected.GET("/dashboard/projects", svc.dashboardHandler.List)

			// Activity feed
			protected.GET("/activity", svc.activityHandler.List)
			protected.GET("/activity/projects/:id", svc.activityHandler.ListForProject)
		}
	}
}
