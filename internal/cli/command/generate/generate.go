package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/CommitSage/internal/cli/command/handler"
	"github.com/Tomas-vilte/CommitSage/internal/config"
	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/ports"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai/factory"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/CommitSage/internal/services"
	"github.com/urfave/cli/v3"
)

type GenerateCommandFactory struct {
	gitService ports.GitService
}

func NewGenerateCommandFactory(gitService ports.GitService) *GenerateCommandFactory {
	return &GenerateCommandFactory{
		gitService: gitService,
	}
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "generate",
		Aliases:     []string{"g"},
		Usage:       t.GetMessage("generate_command_usage", 0, nil),
		Description: t.GetMessage("generate_command_description", 0, nil),
		Flags:       f.createFlags(cfg, t),
		Action:      f.createAction(cfg, t),
	}
}

func (f *GenerateCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Value:   string(cfg.ActiveAI),
			Usage:   t.GetMessage("generate_provider_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "no-scope",
			Usage: t.GetMessage("generate_no_scope_flag_usage", 0, nil),
		},
		&cli.IntFlag{
			Name:    "iterations",
			Aliases: []string{"i"},
			Value:   int64(cfg.MaxReflectionIterations),
			Usage:   t.GetMessage("generate_iterations_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   t.GetMessage("generate_yes_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Value: cfg.DryRun,
			Usage: t.GetMessage("generate_dry_run_flag_usage", 0, nil),
		},
	}
}

func (f *GenerateCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		kind := config.AI(command.String("provider"))
		if !config.IsSupportedAI(kind) {
			valid := make([]string, 0, len(config.SupportedAIs()))
			for _, supported := range config.SupportedAIs() {
				valid = append(valid, string(supported))
			}
			msg := t.GetMessage("config_invalid_provider", 0, map[string]interface{}{
				"Provider": string(kind),
				"Valid":    strings.Join(valid, ", "),
			})
			return fmt.Errorf("%s", msg)
		}

		if _, configured := cfg.APIKeyFor(kind); !configured {
			msg := t.GetMessage("error_missing_api_key", 0, map[string]interface{}{
				"Provider": string(kind),
			})
			return fmt.Errorf("%s", msg)
		}

		provider, err := factory.NewProvider(ctx, kind, cfg)
		if err != nil {
			return err
		}

		service := services.NewGenerationService(f.gitService, provider, cfg, f.serviceOptions(cfg)...)

		fmt.Println("🔍 " + t.GetMessage("analyzing_changes", 0, nil))

		result, err := service.Execute(ctx, services.ExecuteOptions{
			IncludeScope:            cfg.IncludeScope && !command.Bool("no-scope"),
			MaxReflectionIterations: int(command.Int("iterations")),
		})
		if err != nil {
			return f.translateError(err, t)
		}

		resultHandler := handler.NewResultHandler(f.gitService, t)
		return resultHandler.HandleResult(ctx, result, handler.HandleOptions{
			DryRun:    command.Bool("dry-run"),
			AssumeYes: command.Bool("yes"),
		})
	}
}

func (f *GenerateCommandFactory) serviceOptions(cfg *config.Config) []services.ServiceOption {
	var opts []services.ServiceOption
	if cfg.GitHubToken != "" && cfg.RepoOwner != "" && cfg.RepoName != "" {
		opts = append(opts, services.WithIssueReader(github.NewClient(cfg.RepoOwner, cfg.RepoName, cfg.GitHubToken)))
	}
	return opts
}

func (f *GenerateCommandFactory) translateError(err error, t *i18n.Translations) error {
	var unavailable *domainerrors.ProviderUnavailableError
	if errors.As(err, &unavailable) {
		msg := t.GetMessage("provider_not_available", 0, map[string]interface{}{
			"Provider": unavailable.Provider,
		})
		return fmt.Errorf("%s", msg)
	}

	var input *domainerrors.InputError
	if errors.As(err, &input) {
		if strings.Contains(input.Reason, "repository") {
			return fmt.Errorf("%s", t.GetMessage("not_a_repository", 0, nil))
		}
		return fmt.Errorf("%s", t.GetMessage("no_staged_changes", 0, nil))
	}

	msg := t.GetMessage("generation_failed", 0, map[string]interface{}{
		"Error": err,
	})
	return fmt.Errorf("%s", msg)
}
