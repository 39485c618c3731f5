package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai"
)

const (
	providerName   = "gemini"
	requestTimeout = 60 * time.Second
)

type Provider struct {
	client    *genai.Client
	modelName string
	apiKey    string
}

func NewProvider(ctx context.Context, apiKey, modelName string) (*Provider, error) {
	if apiKey == "" {
		return &Provider{modelName: modelName}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Provider{
		client:    client,
		modelName: modelName,
		apiKey:    apiKey,
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

// IsAvailable reports whether the client was configured with a key.
// Gemini has no cheap liveness endpoint; a bad key surfaces on the
// first generation call instead.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.client != nil && p.apiKey != ""
}

func (p *Provider) GenerateCommitMessage(ctx context.Context, genCtx models.GenerationContext) (*models.CommitMessage, error) {
	system := ai.BuildCommitSystemPrompt(genCtx.CommitTypes, len(genCtx.Scopes) > 0)
	user := ai.BuildCommitUserPrompt(genCtx)

	raw, err := p.GenerateText(ctx, system, user, models.TextOptions{
		Temperature: 0.4,
		MaxTokens:   2048,
		JSONFormat:  true,
	})
	if err != nil {
		return nil, err
	}

	return ai.ParseCommitMessage(providerName, raw)
}

func (p *Provider) GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts models.TextOptions) (string, error) {
	if p.client == nil {
		return "", domainerrors.NewProviderUnavailableError(providerName, "no API key configured")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.JSONFormat {
		model.ResponseMIMEType = "application/json"
	}
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", domainerrors.NewGenerationError(providerName, "content generation failed", err)
	}

	text := formatResponse(resp)
	if text == "" {
		return "", domainerrors.NewGenerationError(providerName, "empty response", nil)
	}
	return text, nil
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// Close releases the underlying API client.
func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
