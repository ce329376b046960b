package textgen

import (
	"context"
	"fmt"

	"studyquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIGenerator produces completions through the OpenAI chat API.
type OpenAIGenerator struct {
	llm         *openai.LLM
	temperature float64
	logger      *zap.Logger
}

// NewOpenAIGenerator creates an OpenAI-backed text generator.
func NewOpenAIGenerator(apiKey, modelName string, temperature float64, logger *zap.Logger) (domain.TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}
	logger.Info("Initializing OpenAI text generator", zap.String("model", modelName))
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAIGenerator{llm: llm, temperature: temperature, logger: logger}, nil
}

// Generate implements domain.TextGenerator.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("OpenAI completion failed", zap.Error(err))
		return "", err
	}
	g.logger.Debug("Received OpenAI completion", zap.Int("length", len(completion)))
	return completion, nil
}

var _ domain.TextGenerator = (*OpenAIGenerator)(nil)
