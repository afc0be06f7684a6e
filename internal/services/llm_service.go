package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/formpilot/autofill-backend/internal/config"
)

// LLMService wraps the Gemini client. Created once at startup and shared by
// all requests; the client is safe for concurrent use.
type LLMService struct {
	Client llms.Model
}

func NewLLMService(ctx context.Context, cfg config.GeminiConfig) (*LLMService, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

// Generate runs a single completion at temperature 0. The same profile and
// field set should produce the same fill nearly every time, so sampling
// variance is pinned down as far as the provider allows.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithTemperature(0))
}
