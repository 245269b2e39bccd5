package service

import (
	"context"
	"fmt"
	"time"

	"github.com/davitran/applyassist/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// TextGenerator is the boundary to the external completion endpoint: send a
// prompt, receive raw text. Callers treat the result as untrusted and fall
// back to deterministic paths when it is unusable.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int32) (string, error)
}

type geminiTextGenerator struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

func NewGeminiTextGenerator(cfg *config.Config) (TextGenerator, error) {
	timeout := time.Duration(cfg.LLMTimeout) * time.Second

	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Text generation will be non-functional; fallback paths will serve all requests.")
		return &geminiTextGenerator{model: nil, timeout: timeout}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.GeminiModel)
	return &geminiTextGenerator{model: model, timeout: timeout}, nil
}

// Generate performs one synchronous call with a bounded timeout and no retry.
func (g *geminiTextGenerator) Generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	if g.model == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.model.SetMaxOutputTokens(maxTokens)

	resp, err := g.model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}
	if fullResponseText == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}

	return fullResponseText, nil
}
