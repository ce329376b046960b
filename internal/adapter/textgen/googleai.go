// Package textgen provides LLM-backed implementations of
// domain.TextGenerator.
package textgen

import (
	"context"
	"fmt"

	"studyquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GoogleAIGenerator produces completions through the Gemini API.
type GoogleAIGenerator struct {
	llm         *googleai.GoogleAI
	temperature float64
	logger      *zap.Logger
}

// NewGoogleAIGenerator creates a Gemini-backed text generator.
func NewGoogleAIGenerator(ctx context.Context, apiKey, modelName string, temperature float64, logger *zap.Logger) (domain.TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}
	logger.Info("Initializing Gemini text generator", zap.String("model", modelName))
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GoogleAIGenerator{llm: llm, temperature: temperature, logger: logger}, nil
}

// Generate implements domain.TextGenerator.
func (g *GoogleAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("Gemini completion failed", zap.Error(err))
		return "", err
	}
	g.logger.Debug("Received Gemini completion", zap.Int("length", len(completion)))
	return completion, nil
}

var _ domain.TextGenerator = (*GoogleAIGenerator)(nil)
