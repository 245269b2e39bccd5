package repository

import (
	"github.com/davitran/applyassist/internal/model"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	Update(feedback *model.Feedback) error
	FindByAnswerID(answerID uint) (*model.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *feedbackRepository) Update(feedback *model.Feedback) error {
	return r.db.Save(feedback).Error
}

func (r *feedbackRepository) FindByAnswerID(answerID uint) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := r.db.Where("answer_id = ?", answerID).First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}
