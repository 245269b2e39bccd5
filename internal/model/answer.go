package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer holds one submission per question. Uniqueness is enforced by a
// lookup-before-insert in the service layer, not by a database constraint;
// resubmission overwrites the row in place and refreshes CreatedAt.
type Answer struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	SessionID            uint           `json:"session_id" gorm:"not null;index"`
	QuestionID           uint           `json:"question_id" gorm:"not null;index"`
	AnswerText           string         `json:"answer_text" gorm:"type:text;not null"`
	RelevanceScore       float64        `json:"relevance_score"`       // 0-100
	StructureScore       float64        `json:"structure_score"`       // 0-100
	ProfessionalismScore float64        `json:"professionalism_score"` // 0-100
	OverallScore         float64        `json:"overall_score"`         // 0-100
	Feedback             *Feedback      `json:"feedback,omitempty" gorm:"foreignKey:AnswerID"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
