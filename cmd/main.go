package main

import (
	"context"
	"fmt"
	"log"
	"os"

	configcommand "github.com/Tomas-vilte/CommitSage/internal/cli/command/config"
	"github.com/Tomas-vilte/CommitSage/internal/cli/command/generate"
	"github.com/Tomas-vilte/CommitSage/internal/cli/registry"
	cfg "github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/git"
	"github.com/Tomas-vilte/CommitSage/internal/logger"
	"github.com/Tomas-vilte/CommitSage/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	logger.Initialize(os.Getenv("COMMITSAGE_DEBUG") != "", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, fmt.Errorf("could not load translations: %w", err)
	}

	gitService := git.NewGitService()

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("generate", generate.NewGenerateCommandFactory(gitService)); err != nil {
		return nil, fmt.Errorf("could not register the 'generate' command: %w", err)
	}

	if err := registerCommand.Register("config", configcommand.NewConfigCommandFactory()); err != nil {
		return nil, fmt.Errorf("could not register the 'config' command: %w", err)
	}

	return &cli.Command{
		Name:                  "commitsage",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}
