package anthropic

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai"
)

const (
	providerName   = "anthropic"
	requestTimeout = 60 * time.Second
	defaultTokens  = 2048
)

type Provider struct {
	api    *anthropic.Client
	model  anthropic.Model
	apiKey string
}

func NewProvider(apiKey, modelName string) *Provider {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Provider{
		api:    &client,
		model:  anthropic.Model(modelName),
		apiKey: apiKey,
	}
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.apiKey != ""
}

func (p *Provider) GenerateCommitMessage(ctx context.Context, genCtx models.GenerationContext) (*models.CommitMessage, error) {
	system := ai.BuildCommitSystemPrompt(genCtx.CommitTypes, len(genCtx.Scopes) > 0)
	user := ai.BuildCommitUserPrompt(genCtx)

	raw, err := p.GenerateText(ctx, system, user, models.TextOptions{
		Temperature: 0.4,
		MaxTokens:   defaultTokens,
		JSONFormat:  true,
	})
	if err != nil {
		return nil, err
	}

	return ai.ParseCommitMessage(providerName, raw)
}

func (p *Provider) GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts models.TextOptions) (string, error) {
	if p.apiKey == "" {
		return "", domainerrors.NewProviderUnavailableError(providerName, "no API key configured")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultTokens
	}

	params := anthropic.MessageNewParams{
		Model:       p.model,
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(float64(opts.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	msg, err := p.api.Messages.New(ctx, params)
	if err != nil {
		return "", domainerrors.NewGenerationError(providerName, "message request failed", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", domainerrors.NewGenerationError(providerName, "empty response", nil)
	}
	return text, nil
}
