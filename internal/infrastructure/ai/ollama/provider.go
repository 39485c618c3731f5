package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai"
)

const (
	providerName = "ollama"
	// Local models are slow on modest hardware; give them room.
	requestTimeout = 120 * time.Second
	probeTimeout   = 5 * time.Second
)

// Provider talks to a local Ollama server over its JSON HTTP API.
type Provider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewProvider builds an Ollama-backed provider. baseURL is the API
// root (e.g. http://localhost:11434). A nil httpClient gets a default
// with the request timeout applied.
func NewProvider(baseURL, model string, httpClient *http.Client) *Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Provider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

func (p *Provider) Name() string {
	return providerName
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// IsAvailable GETs /api/tags and checks the configured model is
// present. Any failure reads as unavailable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var body tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	for _, m := range body.Models {
		if m.Name == p.model {
			return true
		}
	}
	return false
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

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

func (p *Provider) GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts models.TextOptions) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	reqBody := chatRequest{
		Model:    p.model,
		Messages: messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": opts.Temperature,
		},
	}
	if opts.MaxTokens > 0 {
		reqBody.Options["num_predict"] = opts.MaxTokens
	}
	if opts.JSONFormat {
		reqBody.Format = "json"
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", domainerrors.NewGenerationError(providerName, "encoding chat request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", domainerrors.NewGenerationError(providerName, "building chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", domainerrors.NewGenerationError(providerName, "chat request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", domainerrors.NewGenerationError(providerName, fmt.Sprintf("chat request returned HTTP %d", resp.StatusCode), nil)
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", domainerrors.NewGenerationError(providerName, "decoding chat response", err)
	}

	text := strings.TrimSpace(body.Message.Content)
	if text == "" {
		return "", domainerrors.NewGenerationError(providerName, "empty response", nil)
	}
	return text, nil
}
