package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	maxJobDescriptionPromptChars = 2000
	defaultNumQuestions          = 5
	defaultDifficulty            = "medium"
	defaultQuestionType          = "behavioral"
)

// GeneratedQuestion is one synthesized question, fully defaulted and ordered.
type GeneratedQuestion struct {
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	Difficulty   string `json:"difficulty"`
	OrderNum     int    `json:"order"`
}

// QuestionGeneratorService synthesizes interview questions from job context.
// It never fails: any generation or parse error yields the fixed fallback set.
type QuestionGeneratorService interface {
	GenerateQuestions(ctx context.Context, jobTitle, jobDescription string, companyName *string, numQuestions int, difficulty string) []GeneratedQuestion
}

type questionGeneratorService struct {
	generator TextGenerator
}

func NewQuestionGeneratorService(generator TextGenerator) QuestionGeneratorService {
	return &questionGeneratorService{generator: generator}
}

func (s *questionGeneratorService) GenerateQuestions(ctx context.Context, jobTitle, jobDescription string, companyName *string, numQuestions int, difficulty string) []GeneratedQuestion {
	if numQuestions <= 0 {
		numQuestions = defaultNumQuestions
	}
	if difficulty == "" {
		difficulty = defaultDifficulty
	}

	prompt := buildQuestionPrompt(jobTitle, jobDescription, companyName, numQuestions, difficulty)

	raw, err := s.generator.Generate(ctx, prompt, 2000)
	if err != nil {
		log.Warn().Err(err).Str("jobTitle", jobTitle).Msg("Question generation call failed, using fallback questions")
		return fallbackQuestions(jobTitle, numQuestions, difficulty)
	}

	questions, err := parseGeneratedQuestions(raw, difficulty)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse generated questions, using fallback questions")
		return fallbackQuestions(jobTitle, numQuestions, difficulty)
	}

	return tagAndTruncate(questions, numQuestions)
}

func buildQuestionPrompt(jobTitle, jobDescription string, companyName *string, numQuestions int, difficulty string) string {
	companyContext := ""
	if companyName != nil && *companyName != "" {
		companyContext = fmt.Sprintf(" at %s", *companyName)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert interview coach. Generate %d interview questions for a %s position%s.\n\n", numQuestions, jobTitle, companyContext))
	b.WriteString("Job Description:\n")
	b.WriteString(truncateRunes(jobDescription, maxJobDescriptionPromptChars))
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("1. Generate a mix of behavioral, technical, and situational questions\n")
	b.WriteString(fmt.Sprintf("2. Difficulty level: %s\n", difficulty))
	b.WriteString("3. Questions should be specific to the role and requirements mentioned\n")
	b.WriteString("4. Include questions that assess both technical skills and soft skills\n")
	b.WriteString("5. Format each question as a JSON object with: question_text, question_type (behavioral/technical/situational), difficulty\n\n")
	b.WriteString("Return ONLY a JSON array of questions, no additional text.\n\n")
	b.WriteString("Example format:\n")
	b.WriteString(`[
  {
    "question_text": "Tell me about a time when you had to debug a complex issue in production.",
    "question_type": "behavioral",
    "difficulty": "medium"
  }
]`)
	return b.String()
}

// parseGeneratedQuestions applies the strict schema step: the raw response
// either yields fully-populated records or an error that routes to fallback.
// Partial trust of the parsed structure is never allowed through.
func parseGeneratedQuestions(raw string, requestedDifficulty string) ([]GeneratedQuestion, error) {
	cleaned := stripCodeFence(raw)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("response is not a JSON array of questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("response contained no questions")
	}

	for i := range questions {
		if strings.TrimSpace(questions[i].QuestionText) == "" {
			return nil, fmt.Errorf("question %d has empty question_text", i)
		}
		if !validQuestionType(questions[i].QuestionType) {
			questions[i].QuestionType = defaultQuestionType
		}
		if !validDifficulty(questions[i].Difficulty) {
			questions[i].Difficulty = requestedDifficulty
		}
	}
	return questions, nil
}

// tagAndTruncate limits the list to min(requested, available) and assigns the
// 1-based order by position. The generator's own ordering fields are ignored.
func tagAndTruncate(questions []GeneratedQuestion, numQuestions int) []GeneratedQuestion {
	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}
	for i := range questions {
		questions[i].OrderNum = i + 1
	}
	return questions
}

// fallbackQuestions is the availability guarantee: a fixed, generically-worded
// set served with the caller's requested difficulty whenever generation fails.
func fallbackQuestions(jobTitle string, numQuestions int, difficulty string) []GeneratedQuestion {
	questions := []GeneratedQuestion{
		{QuestionText: fmt.Sprintf("Tell me about your experience relevant to this %s role.", jobTitle), QuestionType: "behavioral", Difficulty: difficulty},
		{QuestionText: "Describe a challenging project you worked on and how you overcame obstacles.", QuestionType: "behavioral", Difficulty: difficulty},
		{QuestionText: "How do you stay updated with the latest technologies and industry trends?", QuestionType: "behavioral", Difficulty: difficulty},
		{QuestionText: "Tell me about a time when you had to work with a difficult team member.", QuestionType: "situational", Difficulty: difficulty},
		{QuestionText: "Where do you see yourself in 5 years, and how does this role fit into your career goals?", QuestionType: "behavioral", Difficulty: difficulty},
	}
	return tagAndTruncate(questions, numQuestions)
}

func validQuestionType(t string) bool {
	return t == "behavioral" || t == "technical" || t == "situational"
}

func validDifficulty(d string) bool {
	return d == "easy" || d == "medium" || d == "hard"
}

// stripCodeFence removes a surrounding markdown code fence, which Gemini adds
// even when told to return bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
