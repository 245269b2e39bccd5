package model

import (
	"time"

	"gorm.io/gorm"
)

// User rows are provisioned by the identity service that issues our JWTs;
// this API only reads them for ownership checks and foreign keys.
type User struct {
	ID        uint               `gorm:"primarykey" json:"id"`
	Email     string             `json:"email" gorm:"not null;uniqueIndex"`
	Username  string             `json:"username" gorm:"not null;uniqueIndex"`
	Sessions  []InterviewSession `json:"sessions,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
}
