package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
	"kudoswall/internal/config"
	"kudoswall/internal/metrics"
)

var ErrAIDisabled = errors.New("generative model is not configured")

// TextGenerator sends a prompt to a generative model and returns its text.
type TextGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API. Every call gets the configured
// deadline; there are no retries.
type GeminiGenerator struct {
	client  *genai.Client
	timeout time.Duration
}

// NewTextGenerator returns a Gemini-backed generator, or one that always
// fails with ErrAIDisabled when no API key is configured.
func NewTextGenerator(ctx context.Context, cfg config.AIConfig) (TextGenerator, error) {
	if !cfg.IsEnabled() {
		return disabledGenerator{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiGenerator{client: client, timeout: cfg.Timeout()}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := float32(0.2)
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string, string) (string, error) {
	return "", ErrAIDisabled
}

// generate wraps a model call with latency and outcome metrics.
func generate(ctx context.Context, gen TextGenerator, m *metrics.Metrics, operation, model, prompt string) (string, error) {
	start := time.Now()
	text, err := gen.Generate(ctx, model, prompt)

	outcome := "success"
	switch {
	case errors.Is(err, ErrAIDisabled):
		outcome = "disabled"
	case errors.Is(err, context.DeadlineExceeded):
		outcome = "timeout"
	case err != nil:
		outcome = "error"
	}
	m.AIRequests.WithLabelValues(operation, outcome).Inc()
	if outcome != "disabled" {
		m.AILatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
	return text, err
}
