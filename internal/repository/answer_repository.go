package repository

import (
	"github.com/davitran/applyassist/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(answer *model.Answer) error
	Update(answer *model.Answer) error
	// FindByQuestionID backs the lookup-before-insert that keeps answers 1:1
	// with questions. Returns gorm.ErrRecordNotFound when no answer exists.
	FindByQuestionID(questionID uint) (*model.Answer, error)
	FindBySession(sessionID uint) ([]model.Answer, error)
	CountBySession(sessionID uint) (int64, error)
	CountByUser(userID uint) (int64, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) FindByQuestionID(questionID uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.Where("question_id = ?", questionID).First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindBySession(sessionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

func (r *answerRepository) CountBySession(sessionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).Where("session_id = ?", sessionID).Count(&count).Error
	return count, err
}

func (r *answerRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).
		Joins("JOIN interview_sessions ON interview_sessions.id = answers.session_id").
		Where("interview_sessions.user_id = ? AND interview_sessions.deleted_at IS NULL", userID).
		Count(&count).Error
	return count, err
}
