package models

import "time"

// ActivityLog records one social or editor event for the activity feed.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Module    string    `gorm:"size:100;index" json:"module"`
	Action    string    `gorm:"size:200;index" json:"action"`
	ActorID   string    `gorm:"size:100;index" json:"actor_id"`
	ProjectID string    `gorm:"size:100;index" json:"project_id"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
