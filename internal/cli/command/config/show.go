package config

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println(t.GetMessage("current_config", 0, nil))
			fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━")

			fmt.Printf("%s\n", t.GetMessage("language_label", 0, map[string]interface{}{
				"Lang": cfg.Language,
			}))
			fmt.Printf("%s\n", t.GetMessage("active_provider_label", 0, map[string]interface{}{
				"Provider": string(cfg.ActiveAI),
			}))

			for _, ai := range config.SupportedAIs() {
				fmt.Printf("%s\n", t.GetMessage("model_label", 0, map[string]interface{}{
					"Provider": string(ai),
					"Model":    string(cfg.Models[ai]),
				}))
			}

			for _, ai := range []config.AI{config.AIGemini, config.AIAnthropic} {
				id := "api_key_not_set"
				if _, configured := cfg.APIKeyFor(ai); configured {
					id = "api_key_set"
				}
				fmt.Printf("%s\n", t.GetMessage(id, 0, map[string]interface{}{
					"Provider": string(ai),
				}))
			}

			fmt.Printf("%s\n", t.GetMessage("ollama_url_label", 0, map[string]interface{}{
				"URL": cfg.OllamaBaseURL,
			}))

			return nil
		},
	}
}
