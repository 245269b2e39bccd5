package service

import (
	"context"
	"fmt"
	"testing"
)

// fakeTextGenerator returns a canned response or error.
type fakeTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeTextGenerator) Generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const questionsJSON = `[
  {"question_text": "Explain how you would design a caching layer.", "question_type": "technical", "difficulty": "hard"},
  {"question_text": "Tell me about a production incident you handled.", "question_type": "behavioral", "difficulty": "medium"},
  {"question_text": "How would you onboard a struggling teammate?", "question_type": "situational", "difficulty": "medium"}
]`

func TestGenerateQuestions_ParsesAndOrders(t *testing.T) {
	gen := NewQuestionGeneratorService(&fakeTextGenerator{response: questionsJSON})

	questions := gen.GenerateQuestions(context.Background(), "Backend Engineer", "Build services", nil, 3, "medium")

	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if q.OrderNum != i+1 {
			t.Errorf("question %d: expected order %d, got %d", i, i+1, q.OrderNum)
		}
		if q.QuestionText == "" {
			t.Errorf("question %d has empty text", i)
		}
	}
	if questions[0].QuestionType != "technical" {
		t.Errorf("expected first question type technical, got %s", questions[0].QuestionType)
	}
}

func TestGenerateQuestions_TruncatesToRequestedCount(t *testing.T) {
	gen := NewQuestionGeneratorService(&fakeTextGenerator{response: questionsJSON})

	questions := gen.GenerateQuestions(context.Background(), "Backend Engineer", "Build services", nil, 2, "medium")

	if len(questions) != 2 {
		t.Fatalf("expected min(requested, available)=2 questions, got %d", len(questions))
	}
	if questions[1].OrderNum != 2 {
		t.Errorf("expected last order 2, got %d", questions[1].OrderNum)
	}
}

func TestGenerateQuestions_ReturnsFewerWhenGeneratorReturnsFewer(t *testing.T) {
	gen := NewQuestionGeneratorService(&fakeTextGenerator{response: questionsJSON})

	questions := gen.GenerateQuestions(context.Background(), "Backend Engineer", "Build services", nil, 10, "medium")

	if len(questions) != 3 {
		t.Fatalf("expected all 3 available questions, got %d", len(questions))
	}
}

func TestGenerateQuestions_StripsCodeFence(t *testing.T) {
	fenced := "```json\n" + questionsJSON + "\n```"
	gen := NewQuestionGeneratorService(&fakeTextGenerator{response: fenced})

	questions := gen.GenerateQuestions(context.Background(), "Backend Engineer", "Build services", nil, 3, "medium")

	if len(questions) != 3 {
		t.Fatalf("expected fence-wrapped JSON to parse, got %d questions", len(questions))
	}
}

func TestGenerateQuestions_FallbackOnGeneratorError(t *testing.T) {
	gen := NewQuestionGeneratorService(&fakeTextGenerator{err: fmt.Errorf("backend unavailable")})

	questions := gen.GenerateQuestions(context.Background(), "Data Analyst", "Analyze data", nil, 5, "hard")

	if len(questions) != 5 {
		t.Fatalf("expected 5 fallback questions, got %d", len(questions))
	}
	for i, q := range questions {
		if q.Difficulty != "hard" {
			t.Errorf("fallback question %d: expected requested difficulty hard, got %s", i, q.Difficulty)
		}
		if q.OrderNum != i+1 {
			t.Errorf("fallback question %d: expected order %d, got %d", i, i+1, q.OrderNum)
		}
	}
}

func TestGenerateQuestions_FallbackOnMalformedResponse(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"not json", "Here are some great questions for you!"},
		{"json object not array", `{"question_text": "only one"}`},
		{"empty array", `[]`},
		{"missing question_text", `[{"question_type": "behavioral", "difficulty": "easy"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewQuestionGeneratorService(&fakeTextGenerator{response: tc.response})
			questions := gen.GenerateQuestions(context.Background(), "QA Engineer", "Test software", nil, 3, "easy")
			if len(questions) != 3 {
				t.Fatalf("expected 3 fallback questions, got %d", len(questions))
			}
			if questions[0].Difficulty != "easy" {
				t.Errorf("expected fallback difficulty easy, got %s", questions[0].Difficulty)
			}
		})
	}
}

func TestGenerateQuestions_DefaultsInvalidItemFields(t *testing.T) {
	response := `[{"question_text": "What motivates you?", "question_type": "weird", "difficulty": "impossible"}]`
	gen := NewQuestionGeneratorService(&fakeTextGenerator{response: response})

	questions := gen.GenerateQuestions(context.Background(), "PM", "Manage products", nil, 1, "medium")

	if questions[0].QuestionType != "behavioral" {
		t.Errorf("expected invalid type defaulted to behavioral, got %s", questions[0].QuestionType)
	}
	if questions[0].Difficulty != "medium" {
		t.Errorf("expected invalid difficulty defaulted to requested medium, got %s", questions[0].Difficulty)
	}
}

func TestGenerateQuestions_DefaultsCountAndDifficulty(t *testing.T) {
	fake := &fakeTextGenerator{err: fmt.Errorf("down")}
	gen := NewQuestionGeneratorService(fake)

	questions := gen.GenerateQuestions(context.Background(), "Engineer", "Build", nil, 0, "")

	if len(questions) != 5 {
		t.Fatalf("expected default count 5, got %d", len(questions))
	}
	if questions[0].Difficulty != "medium" {
		t.Errorf("expected default difficulty medium, got %s", questions[0].Difficulty)
	}
}

func TestBuildQuestionPrompt_TruncatesDescription(t *testing.T) {
	longDescription := ""
	for i := 0; i < 3000; i++ {
		longDescription += "x"
	}
	fake := &fakeTextGenerator{response: questionsJSON}
	gen := NewQuestionGeneratorService(fake)

	gen.GenerateQuestions(context.Background(), "Engineer", longDescription, nil, 3, "medium")

	if len(fake.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(fake.prompts))
	}
	// The prompt must carry at most the bounded prefix of the description.
	if len(fake.prompts[0]) > maxJobDescriptionPromptChars+1500 {
		t.Errorf("prompt unexpectedly long (%d chars); description not truncated", len(fake.prompts[0]))
	}
}
