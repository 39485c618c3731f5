package config

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config_init_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("✅ %s\n", t.GetMessage("config_initialized", 0, map[string]interface{}{
				"Path": cfg.PathFile,
			}))
			return nil
		},
	}
}
