package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

type (
	Config struct {
		Language string `json:"language"`
		PathFile string `json:"path_file"`
		UseEmoji bool   `json:"use_emoji"`
		DryRun   bool   `json:"dry_run,omitempty"`

		ActiveAI AI           `json:"active_ai"`
		Models   map[AI]Model `json:"models"`

		GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
		AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
		OllamaBaseURL   string `json:"ollama_base_url,omitempty"`

		// GitHub issue enrichment. Optional; the pipeline runs
		// without it.
		GitHubToken string `json:"github_token,omitempty"`
		RepoOwner   string `json:"repo_owner,omitempty"`
		RepoName    string `json:"repo_name,omitempty"`

		CommitTypes   []models.CommitType `json:"commit_types,omitempty"`
		AllowedScopes []string            `json:"allowed_scopes,omitempty"`
		IncludeScope  bool                `json:"include_scope"`

		MaxDiffChars            int `json:"max_diff_chars"`
		SummarizeTokenThreshold int `json:"summarize_token_threshold"`
		MaxReflectionIterations int `json:"max_reflection_iterations"`
	}
)

const (
	defaultLang                    = "en"
	defaultOllamaBaseURL           = "http://localhost:11434"
	defaultMaxDiffChars            = 24000
	defaultSummarizeTokenThreshold = 4000
	defaultMaxReflectionIterations = 2
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".commitsage")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	applyDefaults(&config)
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language:     defaultLang,
		UseEmoji:     true,
		PathFile:     path,
		ActiveAI:     AIGemini,
		IncludeScope: true,
		Models: map[AI]Model{
			AIGemini:    DefaultModelForAI(AIGemini),
			AIAnthropic: DefaultModelForAI(AIAnthropic),
			AIOllama:    DefaultModelForAI(AIOllama),
		},
		OllamaBaseURL:           defaultOllamaBaseURL,
		CommitTypes:             DefaultCommitTypes(),
		MaxDiffChars:            defaultMaxDiffChars,
		SummarizeTokenThreshold: defaultSummarizeTokenThreshold,
		MaxReflectionIterations: defaultMaxReflectionIterations,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.ActiveAI == "" {
		config.ActiveAI = AIGemini
	}
	if config.Models == nil {
		config.Models = map[AI]Model{}
	}
	for _, ai := range SupportedAIs() {
		if config.Models[ai] == "" {
			config.Models[ai] = DefaultModelForAI(ai)
		}
	}
	if config.OllamaBaseURL == "" {
		config.OllamaBaseURL = defaultOllamaBaseURL
	}
	if len(config.CommitTypes) == 0 {
		config.CommitTypes = DefaultCommitTypes()
	}
	if config.MaxDiffChars <= 0 {
		config.MaxDiffChars = defaultMaxDiffChars
	}
	if config.SummarizeTokenThreshold <= 0 {
		config.SummarizeTokenThreshold = defaultSummarizeTokenThreshold
	}
	if config.MaxReflectionIterations <= 0 {
		config.MaxReflectionIterations = defaultMaxReflectionIterations
	}
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language cannot be empty")
	}
	if !IsSupportedAI(config.ActiveAI) {
		return fmt.Errorf("unsupported AI provider: %s", config.ActiveAI)
	}
	if config.MaxDiffChars <= 0 {
		return errors.New("max_diff_chars must be greater than 0")
	}
	if config.MaxReflectionIterations < 0 {
		return errors.New("max_reflection_iterations cannot be negative")
	}

	switch config.ActiveAI {
	case AIOllama:
		if config.OllamaBaseURL == "" {
			return errors.New("ollama base URL is not configured")
		}
	}

	return nil
}

// APIKeyFor returns the configured credential for a backend. Ollama
// needs none, so it always reads as configured.
func (c *Config) APIKeyFor(ai AI) (string, bool) {
	switch ai {
	case AIGemini:
		return c.GeminiAPIKey, c.GeminiAPIKey != ""
	case AIAnthropic:
		return c.AnthropicAPIKey, c.AnthropicAPIKey != ""
	case AIOllama:
		return "", true
	default:
		return "", false
	}
}
