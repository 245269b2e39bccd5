package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davitran/applyassist/internal/dto"
	"github.com/davitran/applyassist/internal/model"
	"github.com/davitran/applyassist/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Sentinel errors mapped to HTTP statuses by the controllers. A session owned
// by another user yields ErrSessionNotFound, the same as an absent id.
var (
	ErrSessionNotFound           = errors.New("session not found")
	ErrQuestionNotFound          = errors.New("question not found")
	ErrQuestionsAlreadyGenerated = errors.New("questions already generated for this session")
	ErrJobDescriptionRequired    = errors.New("job description is required (either directly or via URL)")
)

type InterviewService interface {
	CreateSession(userID uint, req dto.SessionCreateRequest) (*dto.SessionResponse, error)
	ListSessions(userID uint) ([]dto.SessionResponse, error)
	GetSessionDetail(userID uint, sessionID uint) (*dto.SessionDetailResponse, error)
	GenerateQuestions(ctx context.Context, userID uint, sessionID uint, req dto.QuestionGenerateRequest) ([]dto.QuestionResponse, error)
	SubmitAnswer(ctx context.Context, userID uint, sessionID uint, req dto.AnswerSubmitRequest) (*dto.AnswerResponse, error)
}

type interviewService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	feedbackRepo repository.FeedbackRepository
	generator    QuestionGeneratorService
	evaluator    AnswerEvaluatorService
	jobParser    JobParserService
}

func NewInterviewService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	feedbackRepo repository.FeedbackRepository,
	generator QuestionGeneratorService,
	evaluator AnswerEvaluatorService,
	jobParser JobParserService,
) InterviewService {
	return &interviewService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		feedbackRepo: feedbackRepo,
		generator:    generator,
		evaluator:    evaluator,
		jobParser:    jobParser,
	}
}

func (s *interviewService) CreateSession(userID uint, req dto.SessionCreateRequest) (*dto.SessionResponse, error) {
	jobTitle := req.JobTitle
	companyName := req.CompanyName
	jobDescription := req.JobDescription

	if req.JobURL != nil && *req.JobURL != "" && jobDescription == "" {
		parsed, err := s.jobParser.ParseFromURL(*req.JobURL)
		if err != nil {
			log.Warn().Err(err).Str("url", *req.JobURL).Msg("CreateSession: failed to parse job URL")
			return nil, fmt.Errorf("failed to parse job URL: %w", err)
		}
		jobDescription = parsed.JobDescription
		if jobTitle == "" || jobTitle == unknownJobTitle {
			jobTitle = parsed.JobTitle
		}
		if companyName == nil {
			companyName = parsed.CompanyName
		}
	}

	if jobDescription == "" {
		return nil, ErrJobDescriptionRequired
	}

	session := model.InterviewSession{
		UserID:         userID,
		JobTitle:       jobTitle,
		CompanyName:    companyName,
		JobDescription: truncateRunes(jobDescription, maxJobDescriptionChars),
		JobURL:         req.JobURL,
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("CreateSession: failed to persist session")
		return nil, fmt.Errorf("failed to create interview session: %w", err)
	}

	var resp dto.SessionResponse
	if err := copier.Copy(&resp, &session); err != nil {
		return nil, fmt.Errorf("error preparing session response: %w", err)
	}
	return &resp, nil
}

func (s *interviewService) ListSessions(userID uint) ([]dto.SessionResponse, error) {
	sessions, err := s.sessionRepo.FindAllByUser(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("error fetching sessions: %w", err)
	}
	resp := make([]dto.SessionResponse, 0, len(sessions))
	if err := copier.Copy(&resp, &sessions); err != nil {
		return nil, fmt.Errorf("error preparing session list: %w", err)
	}
	return resp, nil
}

func (s *interviewService) GetSessionDetail(userID uint, sessionID uint) (*dto.SessionDetailResponse, error) {
	session, err := s.sessionRepo.FindByIDAndUserWithDetails(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error fetching session %d: %w", sessionID, err)
	}

	var resp dto.SessionDetailResponse
	if err := copier.Copy(&resp.SessionResponse, session); err != nil {
		return nil, fmt.Errorf("error preparing session detail: %w", err)
	}

	resp.Questions = make([]dto.QuestionWithAnswerResponse, len(session.Questions))
	for i, question := range session.Questions {
		var questionResp dto.QuestionWithAnswerResponse
		copier.Copy(&questionResp.QuestionResponse, &question)
		if question.Answer != nil {
			answerResp := answerToResponse(question.Answer, question.Answer.Feedback)
			questionResp.Answer = &answerResp
		}
		resp.Questions[i] = questionResp
	}
	return &resp, nil
}

func (s *interviewService) GenerateQuestions(ctx context.Context, userID uint, sessionID uint, req dto.QuestionGenerateRequest) ([]dto.QuestionResponse, error) {
	session, err := s.sessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error fetching session %d: %w", sessionID, err)
	}

	existing, err := s.questionRepo.CountBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("error counting questions for session %d: %w", sessionID, err)
	}
	// Generation is not idempotent: never silently regenerate.
	if existing > 0 {
		return nil, ErrQuestionsAlreadyGenerated
	}

	generated := s.generator.GenerateQuestions(ctx, session.JobTitle, session.JobDescription, session.CompanyName, req.NumQuestions, req.Difficulty)

	questions := make([]model.Question, len(generated))
	for i, g := range generated {
		questions[i] = model.Question{
			SessionID:    sessionID,
			QuestionText: g.QuestionText,
			QuestionType: g.QuestionType,
			Difficulty:   g.Difficulty,
			OrderNum:     g.OrderNum,
		}
	}

	created, err := s.questionRepo.CreateBatch(questions)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("GenerateQuestions: failed to persist questions")
		return nil, fmt.Errorf("failed to save generated questions: %w", err)
	}

	resp := make([]dto.QuestionResponse, 0, len(created))
	if err := copier.Copy(&resp, &created); err != nil {
		return nil, fmt.Errorf("error preparing question list: %w", err)
	}
	return resp, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, userID uint, sessionID uint, req dto.AnswerSubmitRequest) (*dto.AnswerResponse, error) {
	session, err := s.sessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error fetching session %d: %w", sessionID, err)
	}

	question, err := s.questionRepo.FindByIDAndSession(req.QuestionID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error fetching question %d: %w", req.QuestionID, err)
	}

	jobContext := jobContextString(session)
	evaluation := s.evaluator.EvaluateAnswer(ctx, question.QuestionText, req.AnswerText, question.QuestionType, &jobContext)

	answer, err := s.upsertAnswer(sessionID, question.ID, req.AnswerText, evaluation)
	if err != nil {
		return nil, err
	}

	feedback, err := s.upsertFeedback(answer.ID, evaluation)
	if err != nil {
		return nil, err
	}

	if err := s.recomputeSession(session); err != nil {
		return nil, err
	}

	resp := answerToResponse(answer, feedback)
	return &resp, nil
}

// upsertAnswer is the lookup-before-insert that keeps answers 1:1 with
// questions: a resubmission overwrites text and scores and refreshes the
// timestamp instead of creating a second row.
func (s *interviewService) upsertAnswer(sessionID, questionID uint, answerText string, evaluation Evaluation) (*model.Answer, error) {
	answer, err := s.answerRepo.FindByQuestionID(questionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("error looking up existing answer: %w", err)
		}
		answer = &model.Answer{
			SessionID:  sessionID,
			QuestionID: questionID,
		}
	}

	answer.AnswerText = answerText
	answer.RelevanceScore = evaluation.RelevanceScore
	answer.StructureScore = evaluation.StructureScore
	answer.ProfessionalismScore = evaluation.ProfessionalismScore
	answer.OverallScore = evaluation.OverallScore
	answer.CreatedAt = time.Now()

	if answer.ID == 0 {
		if err := s.answerRepo.Create(answer); err != nil {
			log.Error().Err(err).Uint("questionID", questionID).Msg("SubmitAnswer: failed to create answer")
			return nil, fmt.Errorf("failed to save answer: %w", err)
		}
	} else {
		if err := s.answerRepo.Update(answer); err != nil {
			log.Error().Err(err).Uint("answerID", answer.ID).Msg("SubmitAnswer: failed to update answer")
			return nil, fmt.Errorf("failed to update answer: %w", err)
		}
	}
	return answer, nil
}

func (s *interviewService) upsertFeedback(answerID uint, evaluation Evaluation) (*model.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByAnswerID(answerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("error looking up existing feedback: %w", err)
		}
		feedback = &model.Feedback{AnswerID: answerID}
	}

	feedback.Strengths = evaluation.Strengths
	feedback.Weaknesses = evaluation.Weaknesses
	feedback.Suggestions = evaluation.Suggestions
	feedback.StarAnalysis = evaluation.StarAnalysis
	feedback.ExampleAnswer = evaluation.ExampleAnswer
	feedback.CreatedAt = time.Now()

	if feedback.ID == 0 {
		if err := s.feedbackRepo.Create(feedback); err != nil {
			return nil, fmt.Errorf("failed to save feedback: %w", err)
		}
	} else {
		if err := s.feedbackRepo.Update(feedback); err != nil {
			return nil, fmt.Errorf("failed to update feedback: %w", err)
		}
	}
	return feedback, nil
}

// recomputeSession re-runs aggregation from the current rows after every
// answer write, so a resubmission on a complete session refreshes the mean.
func (s *interviewService) recomputeSession(session *model.InterviewSession) error {
	totalQuestions, err := s.questionRepo.CountBySession(session.ID)
	if err != nil {
		return fmt.Errorf("error counting questions: %w", err)
	}
	answers, err := s.answerRepo.FindBySession(session.ID)
	if err != nil {
		return fmt.Errorf("error fetching answers: %w", err)
	}

	scores := make([]float64, len(answers))
	for i, answer := range answers {
		scores[i] = answer.OverallScore
	}

	overall, completed := RecomputeSessionScore(int(totalQuestions), scores)
	if !completed {
		return nil
	}

	session.OverallScore = overall
	session.Completed = true
	if err := s.sessionRepo.Update(session); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("SubmitAnswer: failed to update session aggregate")
		return fmt.Errorf("failed to update session score: %w", err)
	}
	log.Info().Uint("sessionID", session.ID).Float64("overallScore", *overall).Msg("Session aggregation recomputed")
	return nil
}

func jobContextString(session *model.InterviewSession) string {
	company := "the company"
	if session.CompanyName != nil && *session.CompanyName != "" {
		company = *session.CompanyName
	}
	return fmt.Sprintf("%s at %s", session.JobTitle, company)
}

func answerToResponse(answer *model.Answer, feedback *model.Feedback) dto.AnswerResponse {
	var resp dto.AnswerResponse
	copier.Copy(&resp, answer)
	if feedback != nil {
		var feedbackResp dto.FeedbackResponse
		copier.Copy(&feedbackResp, feedback)
		resp.Feedback = &feedbackResp
	}
	return resp
}
