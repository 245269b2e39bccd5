package repository

import (
	"github.com/davitran/applyassist/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	CreateBatch(questions []model.Question) ([]model.Question, error)
	FindByIDAndSession(id uint, sessionID uint) (*model.Question, error)
	FindBySession(sessionID uint) ([]model.Question, error)
	CountBySession(sessionID uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(questions []model.Question) ([]model.Question, error) {
	if err := r.db.Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByIDAndSession(id uint, sessionID uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.Where("id = ? AND session_id = ?", id, sessionID).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySession(sessionID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("session_id = ?", sessionID).Order("order_num ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountBySession(sessionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("session_id = ?", sessionID).Count(&count).Error
	return count, err
}
