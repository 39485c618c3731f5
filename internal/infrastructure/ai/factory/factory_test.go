package factory

import (
	"context"
	"testing"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	cfg := &config.Config{
		OllamaBaseURL: "http://localhost:11434",
		Models: map[config.AI]config.Model{
			config.AIGemini:    config.ModelGeminiV25Flash,
			config.AIAnthropic: config.ModelClaudeSonnet,
			config.AIOllama:    config.ModelQwenCoder,
		},
	}

	t.Run("maps each kind to its backend", func(t *testing.T) {
		for _, kind := range config.SupportedAIs() {
			provider, err := NewProvider(context.Background(), kind, cfg)
			require.NoError(t, err, "kind %s", kind)
			assert.Equal(t, string(kind), provider.Name())
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := NewProvider(context.Background(), config.AI("skynet"), cfg)
		assert.Error(t, err)
	})

	t.Run("unconfigured backends report unavailable", func(t *testing.T) {
		provider, err := NewProvider(context.Background(), config.AIAnthropic, cfg)
		require.NoError(t, err)
		assert.False(t, provider.IsAvailable(context.Background()))
	})
}
