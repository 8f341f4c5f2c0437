package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/pkg/logger"
)

// ActivityService persists the activity feed and prunes old entries on a
// schedule.
type ActivityService struct {
	db        *gorm.DB
	retention int
	cron      *cron.Cron
}

// NewActivityService creates the service. retentionDays bounds how long
// entries are kept.
func NewActivityService(db *gorm.DB, retentionDays int) *ActivityService {
	return &ActivityService{db: db, retention: retentionDays}
}

// Record writes one activity entry.
func (s *ActivityService) Record(ctx context.Context, task *ActivityTask) error {
	entry := models.ActivityLog{
		Module:    task.Module,
		Action:    task.Action,
		ActorID:   task.ActorID,
		ProjectID: task.ProjectID,
		Message:   task.Message,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// List returns the most recent entries, newest first.
func (s *ActivityService) List(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ActivityLog
	err := s.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// ListForProject returns a project's recent entries, newest first.
func (s *ActivityService) ListForProject(projectID string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ActivityLog
	err := s.db.Where("project_id = ?", projectID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// StartCleanup schedules a nightly prune of entries older than the
// retention window.
func (s *ActivityService) StartCleanup() {
	s.cron = cron.New()
	s.cron.AddFunc("0 3 * * *", func() {
		if err := s.Cleanup(); err != nil {
			logger.Error().Err(err).Msg("activity cleanup failed")
		}
	})
	s.cron.Start()
	logger.Info().Int("retention_days", s.retention).Msg("activity cleanup scheduled")
}

// StopCleanup stops the scheduler.
func (s *ActivityService) StopCleanup() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Cleanup removes entries older than the retention window.
func (s *ActivityService) Cleanup() error {
	cutoff := time.Now().AddDate(0, 0, -s.retention)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		logger.Info().Int64("removed", result.RowsAffected).Msg("pruned old activity entries")
	}
	return nil
}
