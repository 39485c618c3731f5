package ports

import (
	"context"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

type GitService interface {
	// GetStagedChangesContext collects the staged diff, staged file
	// list, current branch and recent commit subjects in one shot.
	GetStagedChangesContext(ctx context.Context) (*models.StagedContext, error)

	// GetExistingScopes parses type(scope): prefixes out of recent
	// history.
	GetExistingScopes(ctx context.Context) ([]string, error)

	HasStagedChanges(ctx context.Context) bool

	CreateCommit(ctx context.Context, message string) error
}

// IssueReader fetches issue context from the VCS host. Optional
// collaborator; the pipeline works without it.
type IssueReader interface {
	GetIssueContext(ctx context.Context, number int) (string, error)
}
