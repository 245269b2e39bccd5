package service

import (
	"fmt"

	"github.com/davitran/applyassist/internal/dto"
	"github.com/davitran/applyassist/internal/repository"
	"github.com/jinzhu/copier"
)

const minSessionsForImprovementRate = 4
const defaultHistoryLimit = 10

// DashboardService derives read-only statistics; nothing here is persisted.
type DashboardService interface {
	GetStats(userID uint) (*dto.DashboardStatsResponse, error)
	GetHistory(userID uint, limit int) (*dto.SessionHistoryResponse, error)
}

type dashboardService struct {
	sessionRepo repository.SessionRepository
	answerRepo  repository.AnswerRepository
}

func NewDashboardService(sessionRepo repository.SessionRepository, answerRepo repository.AnswerRepository) DashboardService {
	return &dashboardService{sessionRepo: sessionRepo, answerRepo: answerRepo}
}

func (s *dashboardService) GetStats(userID uint) (*dto.DashboardStatsResponse, error) {
	totalSessions, err := s.sessionRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error counting sessions: %w", err)
	}
	completedSessions, err := s.sessionRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error counting completed sessions: %w", err)
	}
	averageScore, err := s.sessionRepo.AverageScoreByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error averaging session scores: %w", err)
	}
	totalAnswered, err := s.answerRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error counting answered questions: %w", err)
	}

	var improvementRate *float64
	if completedSessions >= minSessionsForImprovementRate {
		sessions, err := s.sessionRepo.FindCompletedByUserOrderedByCreation(userID)
		if err != nil {
			return nil, fmt.Errorf("error fetching completed sessions: %w", err)
		}
		scores := make([]float64, 0, len(sessions))
		for _, session := range sessions {
			if session.OverallScore != nil {
				scores = append(scores, *session.OverallScore)
			}
		}
		improvementRate = ImprovementRate(scores)
	}

	return &dto.DashboardStatsResponse{
		TotalSessions:          totalSessions,
		CompletedSessions:      completedSessions,
		AverageScore:           averageScore,
		TotalQuestionsAnswered: totalAnswered,
		ImprovementRate:        improvementRate,
	}, nil
}

func (s *dashboardService) GetHistory(userID uint, limit int) (*dto.SessionHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	sessions, err := s.sessionRepo.FindAllByUser(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching session history: %w", err)
	}

	resp := &dto.SessionHistoryResponse{Sessions: make([]dto.SessionResponse, 0, len(sessions))}
	if err := copier.Copy(&resp.Sessions, &sessions); err != nil {
		return nil, fmt.Errorf("error preparing session history: %w", err)
	}
	return resp, nil
}

// ImprovementRate compares the first and second half of a user's completed
// session scores, ordered by creation time. With fewer than four scores the
// rate is undefined and nil is returned, never zero. On an odd count the
// earlier half takes the extra score.
func ImprovementRate(orderedScores []float64) *float64 {
	if len(orderedScores) < minSessionsForImprovementRate {
		return nil
	}

	mid := (len(orderedScores) + 1) / 2
	firstMean := mean(orderedScores[:mid])
	secondMean := mean(orderedScores[mid:])

	rate := 0.0
	if firstMean != 0 {
		rate = (secondMean - firstMean) / firstMean * 100
	}
	return &rate
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
