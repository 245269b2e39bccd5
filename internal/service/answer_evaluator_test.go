package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

const evaluationJSON = `{
  "relevance_score": 85,
  "structure_score": 75,
  "professionalism_score": 90,
  "overall_score": 83,
  "strengths": "Clear communication.",
  "weaknesses": "Few metrics.",
  "suggestions": "Quantify impact.",
  "star_analysis": "Situation and Task were clear.",
  "example_answer": "A stronger answer would be..."
}`

func TestEvaluateAnswer_ParsesExternalResponse(t *testing.T) {
	evaluator := NewAnswerEvaluatorService(&fakeTextGenerator{response: evaluationJSON})

	eval := evaluator.EvaluateAnswer(context.Background(), "Why this role?", "Because I like it.", "behavioral", nil)

	if eval.RelevanceScore != 85 || eval.StructureScore != 75 || eval.ProfessionalismScore != 90 {
		t.Errorf("unexpected scores: %+v", eval)
	}
	// The external overall score is passed through, not recomputed.
	if eval.OverallScore != 83 {
		t.Errorf("expected overall 83 as supplied, got %f", eval.OverallScore)
	}
	if eval.Strengths != "Clear communication." {
		t.Errorf("unexpected strengths: %q", eval.Strengths)
	}
}

func TestEvaluateAnswer_MissingFieldsGetDefaults(t *testing.T) {
	partial := `{"relevance_score": 60, "strengths": "Good start."}`
	evaluator := NewAnswerEvaluatorService(&fakeTextGenerator{response: partial})

	eval := evaluator.EvaluateAnswer(context.Background(), "Q", "A", "technical", nil)

	if eval.RelevanceScore != 60 {
		t.Errorf("expected supplied relevance 60, got %f", eval.RelevanceScore)
	}
	if eval.StructureScore != 70 || eval.ProfessionalismScore != 70 || eval.OverallScore != 70 {
		t.Errorf("expected missing scores defaulted to 70, got %+v", eval)
	}
	if eval.Weaknesses != "Not available" || eval.StarAnalysis != "Not available" {
		t.Errorf("expected missing text fields defaulted, got %+v", eval)
	}
	if eval.Strengths != "Good start." {
		t.Errorf("expected supplied strengths kept, got %q", eval.Strengths)
	}
}

func TestEvaluateAnswer_ClampsOutOfRangeScores(t *testing.T) {
	outOfRange := `{"relevance_score": 150, "structure_score": -20, "professionalism_score": 50, "overall_score": 101,
		"strengths": "s", "weaknesses": "w", "suggestions": "g", "star_analysis": "st", "example_answer": "e"}`
	evaluator := NewAnswerEvaluatorService(&fakeTextGenerator{response: outOfRange})

	eval := evaluator.EvaluateAnswer(context.Background(), "Q", "A", "technical", nil)

	if eval.RelevanceScore != 100 {
		t.Errorf("expected relevance clamped to 100, got %f", eval.RelevanceScore)
	}
	if eval.StructureScore != 0 {
		t.Errorf("expected structure clamped to 0, got %f", eval.StructureScore)
	}
	if eval.OverallScore != 100 {
		t.Errorf("expected overall clamped to 100, got %f", eval.OverallScore)
	}
}

func TestEvaluateAnswer_FallbackOnErrorIsDeterministic(t *testing.T) {
	evaluator := NewAnswerEvaluatorService(&fakeTextGenerator{err: fmt.Errorf("timeout")})
	answer := "I led the migration project and delivered it two weeks early."

	first := evaluator.EvaluateAnswer(context.Background(), "Q", answer, "behavioral", nil)
	second := evaluator.EvaluateAnswer(context.Background(), "Q", answer, "behavioral", nil)

	if first != second {
		t.Errorf("heuristic evaluation not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestHeuristicEvaluation_Scores(t *testing.T) {
	cases := []struct {
		name            string
		answer          string
		relevance       float64
		structure       float64
		professionalism float64
	}{
		{"empty answer", "", 40, 50, 75},
		{"ten words", strings.Repeat("word ", 10), 40, 50, 75},
		{"thirty words", strings.Repeat("word ", 30), 60, 50, 75},
		{"sixty words", strings.Repeat("word ", 60), 100, 70, 75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eval := heuristicEvaluation(tc.answer)
			if eval.RelevanceScore != tc.relevance {
				t.Errorf("relevance: expected %f, got %f", tc.relevance, eval.RelevanceScore)
			}
			if eval.StructureScore != tc.structure {
				t.Errorf("structure: expected %f, got %f", tc.structure, eval.StructureScore)
			}
			if eval.ProfessionalismScore != tc.professionalism {
				t.Errorf("professionalism: expected %f, got %f", tc.professionalism, eval.ProfessionalismScore)
			}
			expectedOverall := (tc.relevance + tc.structure + tc.professionalism) / 3
			if eval.OverallScore != expectedOverall {
				t.Errorf("overall: expected %f, got %f", expectedOverall, eval.OverallScore)
			}
		})
	}
}

func TestEvaluateAnswer_AllNineFieldsAlwaysPresent(t *testing.T) {
	generators := map[string]TextGenerator{
		"malformed response": &fakeTextGenerator{response: "I think the answer was fine."},
		"empty object":       &fakeTextGenerator{response: "{}"},
		"backend error":      &fakeTextGenerator{err: fmt.Errorf("unavailable")},
	}
	for name, g := range generators {
		t.Run(name, func(t *testing.T) {
			eval := NewAnswerEvaluatorService(g).EvaluateAnswer(context.Background(), "Q", "Some answer text", "situational", nil)
			for field, score := range map[string]float64{
				"relevance":       eval.RelevanceScore,
				"structure":       eval.StructureScore,
				"professionalism": eval.ProfessionalismScore,
				"overall":         eval.OverallScore,
			} {
				if score < 0 || score > 100 {
					t.Errorf("%s score %f out of [0,100]", field, score)
				}
			}
			for field, text := range map[string]string{
				"strengths":      eval.Strengths,
				"weaknesses":     eval.Weaknesses,
				"suggestions":    eval.Suggestions,
				"star_analysis":  eval.StarAnalysis,
				"example_answer": eval.ExampleAnswer,
			} {
				if text == "" {
					t.Errorf("%s is empty", field)
				}
			}
		})
	}
}
