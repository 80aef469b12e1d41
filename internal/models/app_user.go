package models

import (
	"time"

	"github.com/google/uuid"
)

// AppUser maps an external auth subject to an application user.
type AppUser struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthSubjectID string    `gorm:"column:auth_uid;size:255;not null;uniqueIndex" json:"-"`
	Email         string    `gorm:"size:255;not null;default:''" json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

func (AppUser) TableName() string { return "app_users" }
