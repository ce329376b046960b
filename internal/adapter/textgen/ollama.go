package textgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"studyquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaGenerator produces completions through a local Ollama server,
// useful for development without a provider API key.
type OllamaGenerator struct {
	llm         *ollama.LLM
	temperature float64
	logger      *zap.Logger
}

// NewOllamaGenerator creates an Ollama-backed text generator.
func NewOllamaGenerator(serverURL, modelName string, temperature float64, logger *zap.Logger) (domain.TextGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("Ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("Ollama model name cannot be empty")
	}
	logger.Info("Initializing Ollama text generator",
		zap.String("server_url", serverURL),
		zap.String("model", modelName),
	)

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelName),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaGenerator{llm: llm, temperature: temperature, logger: logger}, nil
}

// Generate implements domain.TextGenerator.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("Ollama completion failed", zap.Error(err))
		return "", err
	}
	g.logger.Debug("Received Ollama completion", zap.Int("length", len(completion)))
	return completion, nil
}

var _ domain.TextGenerator = (*OllamaGenerator)(nil)
