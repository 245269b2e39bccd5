package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/davitran/applyassist/internal/dto"
	"github.com/davitran/applyassist/internal/middleware"
	"github.com/davitran/applyassist/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type InterviewController struct {
	interviewService service.InterviewService
	jobParser        service.JobParserService
}

func NewInterviewController(interviewService service.InterviewService, jobParser service.JobParserService) *InterviewController {
	return &InterviewController{interviewService: interviewService, jobParser: jobParser}
}

// CreateSession godoc
// @Summary Create a new interview session
// @Description Creates a session from a job description, or from a job posting URL when no description is given.
// @Tags Interviews
// @Accept json
// @Produce json
// @Param session_data body dto.SessionCreateRequest true "Job information for the session"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Missing job description or unparseable URL"
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /interviews [post]
func (c *InterviewController) CreateSession(ctx *gin.Context) {
	var req dto.SessionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.interviewService.CreateSession(middleware.UserID(ctx), req)
	if err != nil {
		if errors.Is(err, service.ErrJobDescriptionRequired) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("CreateSession: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create session", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListSessions godoc
// @Summary List the user's interview sessions
// @Tags Interviews
// @Produce json
// @Success 200 {array} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /interviews [get]
func (c *InterviewController) ListSessions(ctx *gin.Context) {
	sessions, err := c.interviewService.ListSessions(middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListSessions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve sessions"})
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetSessionDetail godoc
// @Summary Get one session with questions, answers and feedback
// @Tags Interviews
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found (or owned by another user)"
// @Security BearerAuth
// @Router /interviews/{session_id} [get]
func (c *InterviewController) GetSessionDetail(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}

	detail, err := c.interviewService.GetSessionDetail(middleware.UserID(ctx), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Session not found"})
			return
		}
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("GetSessionDetail: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve session"})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GenerateQuestions godoc
// @Summary Generate interview questions for a session
// @Description Synthesizes questions from the session's job context. Rejects with a conflict when questions already exist.
// @Tags Interviews
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param params body dto.QuestionGenerateRequest true "Question count and difficulty"
// @Success 201 {array} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Questions already generated"
// @Security BearerAuth
// @Router /interviews/{session_id}/questions [post]
func (c *InterviewController) GenerateQuestions(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}

	var req dto.QuestionGenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	questions, err := c.interviewService.GenerateQuestions(ctx.Request.Context(), middleware.UserID(ctx), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Session not found"})
		case errors.Is(err, service.ErrQuestionsAlreadyGenerated):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("sessionID", sessionID).Msg("GenerateQuestions: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate questions"})
		}
		return
	}
	ctx.JSON(http.StatusCreated, questions)
}

// SubmitAnswer godoc
// @Summary Submit an answer and receive scores and feedback
// @Description Evaluates the answer, stores it (overwriting any previous answer to the question) and recomputes the session aggregate.
// @Tags Interviews
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param answer_data body dto.AnswerSubmitRequest true "Question id and answer text"
// @Success 200 {object} dto.AnswerResponse
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Security BearerAuth
// @Router /interviews/{session_id}/answer [post]
func (c *InterviewController) SubmitAnswer(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}

	var req dto.AnswerSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	answer, err := c.interviewService.SubmitAnswer(ctx.Request.Context(), middleware.UserID(ctx), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Session not found"})
		case errors.Is(err, service.ErrQuestionNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Question not found"})
		default:
			log.Error().Err(err).Uint("sessionID", sessionID).Msg("SubmitAnswer: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit answer"})
		}
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// ParseJobFile godoc
// @Summary Extract job-description text from an uploaded PDF
// @Tags Jobs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Job description PDF"
// @Success 200 {object} dto.JobParseResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable file"
// @Security BearerAuth
// @Router /jobs/parse-file [post]
func (c *InterviewController) ParseJobFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "A 'file' upload is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to read uploaded file"})
		return
	}

	text, err := c.jobParser.ParseFromPDF(content)
	if err != nil {
		log.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("ParseJobFile: extraction failed")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to extract text from file", Details: []string{err.Error()}})
		return
	}

	ctx.JSON(http.StatusOK, dto.JobParseResponse{JobDescription: text})
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}
