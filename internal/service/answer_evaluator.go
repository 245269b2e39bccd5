package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultScore       = 70.0
	missingTextDefault = "Not available"
)

// Evaluation carries the four scores and five narrative fields for one answer.
// Every field is populated: defaults are resolved once when the external
// response is parsed, and numeric fields are always within [0,100].
type Evaluation struct {
	RelevanceScore       float64 `json:"relevance_score"`
	StructureScore       float64 `json:"structure_score"`
	ProfessionalismScore float64 `json:"professionalism_score"`
	OverallScore         float64 `json:"overall_score"`
	Strengths            string  `json:"strengths"`
	Weaknesses           string  `json:"weaknesses"`
	Suggestions          string  `json:"suggestions"`
	StarAnalysis         string  `json:"star_analysis"`
	ExampleAnswer        string  `json:"example_answer"`
}

// AnswerEvaluatorService scores one question/answer pair. The call is total:
// any external failure resolves to the deterministic heuristic evaluation.
type AnswerEvaluatorService interface {
	EvaluateAnswer(ctx context.Context, question, answer, questionType string, jobContext *string) Evaluation
}

type answerEvaluatorService struct {
	generator TextGenerator
}

func NewAnswerEvaluatorService(generator TextGenerator) AnswerEvaluatorService {
	return &answerEvaluatorService{generator: generator}
}

func (s *answerEvaluatorService) EvaluateAnswer(ctx context.Context, question, answer, questionType string, jobContext *string) Evaluation {
	prompt := buildEvaluationPrompt(question, answer, questionType, jobContext)

	raw, err := s.generator.Generate(ctx, prompt, 1500)
	if err != nil {
		log.Warn().Err(err).Msg("Answer evaluation call failed, using heuristic evaluation")
		return heuristicEvaluation(answer)
	}

	evaluation, err := parseEvaluation(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse evaluation response, using heuristic evaluation")
		return heuristicEvaluation(answer)
	}
	return evaluation
}

func buildEvaluationPrompt(question, answer, questionType string, jobContext *string) string {
	contextText := ""
	if jobContext != nil && *jobContext != "" {
		contextText = fmt.Sprintf("\n\nJob Context: %s", *jobContext)
	}

	var b strings.Builder
	b.WriteString("You are an expert interview coach evaluating a candidate's answer.\n\n")
	b.WriteString(fmt.Sprintf("Question Type: %s\n", questionType))
	b.WriteString(fmt.Sprintf("Question: %s\n\n", question))
	b.WriteString("Candidate's Answer:\n")
	b.WriteString(answer)
	b.WriteString(contextText)
	b.WriteString("\n\nEvaluate this answer on the following criteria (score 0-100 for each):\n")
	b.WriteString("1. Relevance: How well does the answer address the question?\n")
	b.WriteString("2. Structure: Is the answer well-organized? (For behavioral questions, check STAR method: Situation, Task, Action, Result)\n")
	b.WriteString("3. Professionalism: Is the language professional and clear?\n\n")
	b.WriteString("Also provide:\n")
	b.WriteString("- Strengths: What the candidate did well\n")
	b.WriteString("- Weaknesses: Areas for improvement\n")
	b.WriteString("- Suggestions: Specific tips to improve the answer\n")
	b.WriteString("- STAR Analysis: If applicable, analyze how well they used the STAR method\n")
	b.WriteString("- Example Answer: A brief example of a stronger answer\n\n")
	b.WriteString("Return your evaluation as a JSON object with this structure:\n")
	b.WriteString(`{
  "relevance_score": 85,
  "structure_score": 75,
  "professionalism_score": 90,
  "overall_score": 83,
  "strengths": "Clear communication...",
  "weaknesses": "Could provide more specific metrics...",
  "suggestions": "Try to quantify your impact...",
  "star_analysis": "Situation and Task were clear, but Action and Result need more detail...",
  "example_answer": "A stronger answer would be..."
}`)
	b.WriteString("\n\nReturn ONLY valid JSON, no additional text.\n")
	return b.String()
}

// parseEvaluation validates the untrusted response into a fully-populated
// Evaluation. Missing numeric fields default to 70, missing text fields to a
// fixed placeholder; scores are clamped to [0,100]. The external overall score
// is passed through, never recomputed from the components.
func parseEvaluation(raw string) (Evaluation, error) {
	cleaned := stripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return Evaluation{}, fmt.Errorf("response is not a JSON object: %w", err)
	}

	return Evaluation{
		RelevanceScore:       scoreField(fields, "relevance_score"),
		StructureScore:       scoreField(fields, "structure_score"),
		ProfessionalismScore: scoreField(fields, "professionalism_score"),
		OverallScore:         scoreField(fields, "overall_score"),
		Strengths:            textField(fields, "strengths"),
		Weaknesses:           textField(fields, "weaknesses"),
		Suggestions:          textField(fields, "suggestions"),
		StarAnalysis:         textField(fields, "star_analysis"),
		ExampleAnswer:        textField(fields, "example_answer"),
	}, nil
}

func scoreField(fields map[string]json.RawMessage, key string) float64 {
	rawValue, ok := fields[key]
	if !ok {
		return defaultScore
	}
	var score float64
	if err := json.Unmarshal(rawValue, &score); err != nil {
		return defaultScore
	}
	return clampScore(score)
}

func textField(fields map[string]json.RawMessage, key string) string {
	rawValue, ok := fields[key]
	if !ok {
		return missingTextDefault
	}
	var text string
	if err := json.Unmarshal(rawValue, &text); err != nil || strings.TrimSpace(text) == "" {
		return missingTextDefault
	}
	return text
}

// heuristicEvaluation is the deterministic fallback scorer: same answer text
// always yields the same scores, with no external dependency.
func heuristicEvaluation(answer string) Evaluation {
	wordCount := len(strings.Fields(answer))

	relevance := float64(wordCount * 2)
	if relevance > 100 {
		relevance = 100
	}
	if relevance < 40 {
		relevance = 40
	}

	structure := 50.0
	if wordCount > 50 {
		structure = 70.0
	}

	professionalism := 75.0
	overall := (relevance + structure + professionalism) / 3

	return Evaluation{
		RelevanceScore:       relevance,
		StructureScore:       structure,
		ProfessionalismScore: professionalism,
		OverallScore:         overall,
		Strengths:            "You provided a response to the question.",
		Weaknesses:           "Unable to provide detailed analysis at this time.",
		Suggestions:          "Try to structure your answer using the STAR method: Situation, Task, Action, Result.",
		StarAnalysis:         "Consider using the STAR framework to structure your behavioral answers.",
		ExampleAnswer:        "A strong answer would include specific examples with measurable outcomes.",
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
