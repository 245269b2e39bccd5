package model

import (
	"time"

	"gorm.io/gorm"
)

type InterviewSession struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	JobTitle       string         `json:"job_title" gorm:"not null"`
	CompanyName    *string        `json:"company_name,omitempty"`
	JobDescription string         `json:"job_description" gorm:"type:text;not null"`
	JobURL         *string        `json:"job_url,omitempty"`
	Completed      bool           `json:"completed" gorm:"default:false"`
	OverallScore   *float64       `json:"overall_score,omitempty"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
	Answers        []Answer       `json:"answers,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
