package ports

import (
	"context"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

// AIProvider is the contract every generation backend implements.
type AIProvider interface {
	// Name returns the backend name used in logs and error messages.
	Name() string

	// IsAvailable probes liveness/configuration. It never returns an
	// error; any failure reads as false.
	IsAvailable(ctx context.Context) bool

	// GenerateCommitMessage produces a structured conventional commit
	// from the assembled generation context.
	GenerateCommitMessage(ctx context.Context, genCtx models.GenerationContext) (*models.CommitMessage, error)

	// GenerateText runs a free-form prompt pair and returns the raw
	// model output. Used by the reflection, reasoning and
	// summarization stages.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts models.TextOptions) (string, error)
}
