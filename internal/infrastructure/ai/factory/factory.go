// Package factory maps a configured backend kind to its provider
// implementation. It lives apart from the shared prompt and response
// helpers so the backends can import those without a cycle.
package factory

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/domain/ports"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai/anthropic"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai/gemini"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai/ollama"
)

// NewProvider maps a backend kind to its implementation. The set of
// kinds is closed; selection happens once per pipeline run.
func NewProvider(ctx context.Context, kind config.AI, cfg *config.Config) (ports.AIProvider, error) {
	switch kind {
	case config.AIGemini:
		return gemini.NewProvider(ctx, cfg.GeminiAPIKey, string(cfg.Models[config.AIGemini]))
	case config.AIAnthropic:
		return anthropic.NewProvider(cfg.AnthropicAPIKey, string(cfg.Models[config.AIAnthropic])), nil
	case config.AIOllama:
		return ollama.NewProvider(cfg.OllamaBaseURL, string(cfg.Models[config.AIOllama]), nil), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", kind)
	}
}
