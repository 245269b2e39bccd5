package dto

// SessionCreateRequest starts a new interview session. Either JobDescription
// or JobURL must be supplied; the URL is parsed when the description is empty.
type SessionCreateRequest struct {
	JobTitle       string  `json:"job_title" binding:"required"`
	CompanyName    *string `json:"company_name"`
	JobDescription string  `json:"job_description"`
	JobURL         *string `json:"job_url"`
}

// QuestionGenerateRequest controls question synthesis for a session.
type QuestionGenerateRequest struct {
	NumQuestions int    `json:"num_questions" binding:"omitempty,min=1,max=20"`
	Difficulty   string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// AnswerSubmitRequest submits (or resubmits) an answer to one question.
type AnswerSubmitRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text" binding:"required"`
}
