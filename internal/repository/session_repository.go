package repository

import (
	"github.com/davitran/applyassist/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.InterviewSession) error
	Update(session *model.InterviewSession) error
	// FindByIDAndUser filters on both ids in one query so a session owned by
	// another user is indistinguishable from a missing one.
	FindByIDAndUser(id uint, userID uint) (*model.InterviewSession, error)
	FindByIDAndUserWithDetails(id uint, userID uint) (*model.InterviewSession, error)
	FindAllByUser(userID uint, limit int) ([]model.InterviewSession, error)
	CountByUser(userID uint) (int64, error)
	CountCompletedByUser(userID uint) (int64, error)
	AverageScoreByUser(userID uint) (*float64, error)
	FindCompletedByUserOrderedByCreation(userID uint) ([]model.InterviewSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.InterviewSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) Update(session *model.InterviewSession) error {
	return r.db.Save(session).Error
}

func (r *sessionRepository) FindByIDAndUser(id uint, userID uint) (*model.InterviewSession, error) {
	var session model.InterviewSession
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByIDAndUserWithDetails(id uint, userID uint) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_num ASC")
		}).
		Preload("Questions.Answer").
		Preload("Questions.Answer.Feedback").
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAllByUser(userID uint, limit int) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.InterviewSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *sessionRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.InterviewSession{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *sessionRepository) AverageScoreByUser(userID uint) (*float64, error) {
	var avg *float64
	err := r.db.Model(&model.InterviewSession{}).
		Select("AVG(overall_score)").
		Where("user_id = ? AND overall_score IS NOT NULL", userID).
		Scan(&avg).Error
	return avg, err
}

func (r *sessionRepository) FindCompletedByUserOrderedByCreation(userID uint) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	err := r.db.
		Where("user_id = ? AND completed = ? AND overall_score IS NOT NULL", userID, true).
		Order("created_at ASC").
		Find(&sessions).Error
	return sessions, err
}
