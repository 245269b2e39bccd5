package model

import (
	"time"

	"gorm.io/gorm"
)

// Question is created in a batch when questions are generated for a session
// and never modified afterwards.
type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	SessionID    uint           `json:"session_id" gorm:"not null;index"`
	QuestionText string         `json:"question_text" gorm:"type:text;not null"`
	QuestionType string         `json:"question_type" gorm:"not null"` // "behavioral", "technical", "situational"
	Difficulty   string         `json:"difficulty" gorm:"not null"`    // "easy", "medium", "hard"
	OrderNum     int            `json:"order" gorm:"not null"`         // 1-based position within the session
	Answer       *Answer        `json:"answer,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
