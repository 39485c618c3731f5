package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations, string) {
	t.Helper()

	tmpDir := t.TempDir()
	tmpConfigPath := filepath.Join(tmpDir, "config.json")

	cfg, err := config.LoadConfig(tmpConfigPath)
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "../../../i18n/locales")
	require.NoError(t, err)

	return cfg, translations, tmpConfigPath
}

func TestConfigCommand(t *testing.T) {
	t.Run("should expose all subcommands", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		cmd := NewConfigCommandFactory().CreateCommand(translations, cfg)

		names := make([]string, 0, len(cmd.Commands))
		for _, sub := range cmd.Commands {
			names = append(names, sub.Name)
		}
		assert.ElementsMatch(t, []string{"init", "show", "set-api-key", "set-provider", "set-lang"}, names)
	})
}

func TestSetLangCommand(t *testing.T) {
	t.Run("should set a supported language", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetLangCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-lang", "--lang", "es"})

		assert.NoError(t, err)
		loadedCfg, err := config.LoadConfig(tmpConfigPath)
		assert.NoError(t, err)
		assert.Equal(t, "es", loadedCfg.Language)
	})

	t.Run("should reject an unsupported language", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetLangCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-lang", "--lang", "fr"})

		assert.Error(t, err)
		loadedCfg, err := config.LoadConfig(tmpConfigPath)
		assert.NoError(t, err)
		assert.Equal(t, "en", loadedCfg.Language)
	})
}

func TestSetProviderCommand(t *testing.T) {
	t.Run("should switch the active provider", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetProviderCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-provider", "--provider", "ollama"})

		assert.NoError(t, err)
		loadedCfg, err := config.LoadConfig(tmpConfigPath)
		assert.NoError(t, err)
		assert.Equal(t, config.AIOllama, loadedCfg.ActiveAI)
	})

	t.Run("should reject an unknown provider", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetProviderCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-provider", "--provider", "openai"})

		assert.Error(t, err)
		assert.Equal(t, config.AIGemini, cfg.ActiveAI)
	})
}

func TestSetAPIKeyCommand(t *testing.T) {
	t.Run("should store a key for each backend", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetAPIKeyCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-api-key", "--provider", "anthropic", "--key", "sk-ant-test-12345"})
		assert.NoError(t, err)

		loadedCfg, err := config.LoadConfig(tmpConfigPath)
		assert.NoError(t, err)
		assert.Equal(t, "sk-ant-test-12345", loadedCfg.AnthropicAPIKey)
	})

	t.Run("should store a github token", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetAPIKeyCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-api-key", "--provider", "github", "--key", "ghp_testtoken123"})
		assert.NoError(t, err)

		loadedCfg, err := config.LoadConfig(tmpConfigPath)
		assert.NoError(t, err)
		assert.Equal(t, "ghp_testtoken123", loadedCfg.GitHubToken)
	})

	t.Run("should reject a key that is too short", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetAPIKeyCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-api-key", "--provider", "gemini", "--key", "short"})

		assert.Error(t, err)
		assert.Empty(t, cfg.GeminiAPIKey)
	})

	t.Run("should reject an unknown backend", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		cmd := factory.newSetAPIKeyCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-api-key", "--provider", "ollama", "--key", "irrelevant-key"})

		assert.Error(t, err)
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("should persist the default configuration", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)

		require.NoError(t, os.Remove(tmpConfigPath))

		factory := NewConfigCommandFactory()
		cmd := factory.newInitCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "init"})

		assert.NoError(t, err)
		assert.FileExists(t, tmpConfigPath)
	})
}
