package main

import (
	"time"

	"github.com/makerport/makerport/internal/config"
	"github.com/makerport/makerport/internal/handlers"
	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/services"
	"github.com/makerport/makerport/internal/store"
	"github.com/makerport/makerport/internal/utils"
	"github.com/makerport/makerport/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	hub       *services.Hub
	taskQueue services.TaskQueue
	worker    *services.Worker
	activity  *services.ActivityService

	authHandler        *handlers.AuthHandler
	editorHandler      *handlers.EditorHandler
	portfolioHandler   *handlers.PortfolioHandler
	dashboardHandler   *handlers.DashboardHandler
	leaderboardHandler *handlers.LeaderboardHandler
	activityHandler    *handlers.ActivityHandler
	eventsHandler      *handlers.EventsHandler
	healthHandler      *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, stores,
// services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Document store and typed collection views
	docStore := store.NewGormStore(models.GetDB())
	projects := store.NewProjects(docStore)
	users := store.NewUsers(docStore)

	catalog := services.NewCatalog()
	hub := services.NewHub()
	sessions := services.NewSessionManager(users, cfg.JWT.ExpireHour)

	// Seed the demo identities on first run
	auth := services.NewAuthService(models.GetDB(), users, sessions)
	if err := auth.EnsureMockUsers(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed mock users")
	}

	// Activity feed: persisted via the task queue, pruned on a schedule
	activity := services.NewActivityService(models.GetDB(), cfg.Activity.RetentionDays)
	activity.StartCleanup()

	taskQueue := services.NewTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(activity.Record)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(activity.Record)
			worker.Start()
		}
	}

	// Editor, publish and social workflows
	debounce := time.Duration(cfg.Autosave.DebounceMS) * time.Millisecond
	floor := time.Duration(cfg.Autosave.IndicatorFloorMS) * time.Millisecond
	editor := services.NewEditorService(projects, hub, debounce, floor)

	publish := services.NewPublishService(editor, func(view, projectID string) {
		hub.PublishNavigate(view, projectID)
	})

	social := services.NewSocialEngine(projects, users, catalog, sessions, hub, taskQueue)
	leaderboard := services.NewLeaderboardService(users, projects, catalog)
	social.SetLeaderboard(leaderboard)

	return &appServices{
		hub:       hub,
		taskQueue: taskQueue,
		worker:    worker,
		activity:  activity,

		authHandler:        handlers.NewAuthHandler(auth, sessions),
		editorHandler:      handlers.NewEditorHandler(editor, publish),
		portfolioHandler:   handlers.NewPortfolioHandler(projects, social, catalog),
		dashboardHandler:   handlers.NewDashboardHandler(projects),
		leaderboardHandler: handlers.NewLeaderboardHandler(leaderboard, catalog),
		activityHandler:    handlers.NewActivityHandler(activity),
		eventsHandler:      handlers.NewEventsHandler(hub),
		healthHandler:      handlers.NewHealthHandler(projects, taskQueue, hub),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.activity.StopCleanup()
	logger.Info().Msg("Schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
