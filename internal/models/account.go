package models

import (
	"time"

	"gorm.io/gorm"
)

// Account is a local credential for a demo sign-in. The profile itself lives
// in the users collection; UserID points at that record.
type Account struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	UserID       string         `gorm:"size:100;index;not null" json:"user_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string { return "accounts" }
