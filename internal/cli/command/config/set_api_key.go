package config

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
	"github.com/urfave/cli/v3"
)

const minAPIKeyLength = 10

func (c *ConfigCommandFactory) newSetAPIKeyCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-api-key",
		Usage: t.GetMessage("config_set_api_key_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "provider",
				Aliases:  []string{"p"},
				Usage:    t.GetMessage("api_key_provider_flag_usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "key",
				Aliases:  []string{"k"},
				Usage:    t.GetMessage("api_key_flag_usage", 0, nil),
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			apiKey := command.String("key")
			if len(apiKey) < minAPIKeyLength {
				msg := t.GetMessage("invalid_api_key", 0, nil)
				return fmt.Errorf("%s", msg)
			}

			provider := command.String("provider")
			switch provider {
			case string(config.AIGemini):
				cfg.GeminiAPIKey = apiKey
			case string(config.AIAnthropic):
				cfg.AnthropicAPIKey = apiKey
			case "github":
				cfg.GitHubToken = apiKey
			default:
				msg := t.GetMessage("config_invalid_provider", 0, map[string]interface{}{
					"Provider": provider,
					"Valid":    "gemini, anthropic, github",
				})
				return fmt.Errorf("%s", msg)
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("✅ %s\n", t.GetMessage("api_key_configured", 0, map[string]interface{}{
				"Provider": provider,
			}))
			return nil
		},
	}
}
