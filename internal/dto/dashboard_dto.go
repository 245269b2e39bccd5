package dto

// DashboardStatsResponse aggregates a user's practice history.
// ImprovementRate is present only once the user has at least four completed
// sessions; below that it is omitted rather than reported as zero.
type DashboardStatsResponse struct {
	TotalSessions          int64    `json:"total_sessions"`
	CompletedSessions      int64    `json:"completed_sessions"`
	AverageScore           *float64 `json:"average_score,omitempty"`
	TotalQuestionsAnswered int64    `json:"total_questions_answered"`
	ImprovementRate        *float64 `json:"improvement_rate,omitempty"`
}

type SessionHistoryResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// JobParseResponse is the result of ingesting a job posting from a URL or file.
type JobParseResponse struct {
	JobTitle       string  `json:"job_title"`
	CompanyName    *string `json:"company_name,omitempty"`
	JobDescription string  `json:"job_description"`
	SourceURL      string  `json:"source_url,omitempty"`
}
