package model

import (
	"time"

	"gorm.io/gorm"
)

type Feedback struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	AnswerID      uint           `json:"answer_id" gorm:"not null;index"`
	Strengths     string         `json:"strengths" gorm:"type:text"`
	Weaknesses    string         `json:"weaknesses" gorm:"type:text"`
	Suggestions   string         `json:"suggestions" gorm:"type:text"`
	StarAnalysis  string         `json:"star_analysis" gorm:"type:text"`
	ExampleAnswer string         `json:"example_answer" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
