package dto

import "time"

// SessionResponse is the summary view of an interview session.
type SessionResponse struct {
	ID             uint      `json:"id"`
	JobTitle       string    `json:"job_title"`
	CompanyName    *string   `json:"company_name,omitempty"`
	JobDescription string    `json:"job_description"`
	JobURL         *string   `json:"job_url,omitempty"`
	Completed      bool      `json:"completed"`
	OverallScore   *float64  `json:"overall_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type QuestionResponse struct {
	ID           uint   `json:"id"`
	SessionID    uint   `json:"session_id"`
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	Difficulty   string `json:"difficulty"`
	OrderNum     int    `json:"order"`
}

type FeedbackResponse struct {
	ID            uint   `json:"id"`
	Strengths     string `json:"strengths"`
	Weaknesses    string `json:"weaknesses"`
	Suggestions   string `json:"suggestions"`
	StarAnalysis  string `json:"star_analysis"`
	ExampleAnswer string `json:"example_answer"`
}

// AnswerResponse carries the stored scores plus the 1:1 feedback record.
type AnswerResponse struct {
	ID                   uint              `json:"id"`
	QuestionID           uint              `json:"question_id"`
	AnswerText           string            `json:"answer_text"`
	RelevanceScore       float64           `json:"relevance_score"`
	StructureScore       float64           `json:"structure_score"`
	ProfessionalismScore float64           `json:"professionalism_score"`
	OverallScore         float64           `json:"overall_score"`
	CreatedAt            time.Time         `json:"created_at"`
	Feedback             *FeedbackResponse `json:"feedback,omitempty"`
}

// QuestionWithAnswerResponse nests the user's answer (if any) under its question.
type QuestionWithAnswerResponse struct {
	QuestionResponse
	Answer *AnswerResponse `json:"answer,omitempty"`
}

// SessionDetailResponse is the full session view with ordered questions.
type SessionDetailResponse struct {
	SessionResponse
	Questions []QuestionWithAnswerResponse `json:"questions"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
