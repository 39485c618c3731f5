package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetProviderCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-provider",
		Usage: t.GetMessage("config_set_provider_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "provider",
				Aliases:  []string{"p"},
				Usage:    t.GetMessage("provider_flag_usage", 0, nil),
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			provider := config.AI(command.String("provider"))
			if !config.IsSupportedAI(provider) {
				valid := make([]string, 0, len(config.SupportedAIs()))
				for _, supported := range config.SupportedAIs() {
					valid = append(valid, string(supported))
				}
				msg := t.GetMessage("config_invalid_provider", 0, map[string]interface{}{
					"Provider": string(provider),
					"Valid":    strings.Join(valid, ", "),
				})
				return fmt.Errorf("%s", msg)
			}

			cfg.ActiveAI = provider
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("✅ %s\n", t.GetMessage("provider_configured", 0, map[string]interface{}{
				"Provider": string(provider),
			}))
			return nil
		},
	}
}
