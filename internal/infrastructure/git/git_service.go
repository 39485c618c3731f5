package git

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/Tomas-vilte/CommitSage/internal/domain/ports"
)

var _ ports.GitService = (*GitService)(nil)

const recentCommitLimit = 10
const scopeHistoryLimit = 50

var conventionalScopeRegex = regexp.MustCompile(`^[a-z]+\(([^)]+)\)!?:`)

type GitService struct {
	workDir string
}

func NewGitService() *GitService {
	return &GitService{}
}

// NewGitServiceAt runs every git command inside dir. Used by tests.
func NewGitServiceAt(dir string) *GitService {
	return &GitService{workDir: dir}
}

func (s *GitService) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if s.workDir != "" {
		cmd.Dir = s.workDir
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %v: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return string(output), nil
}

func (s *GitService) isRepository(ctx context.Context) bool {
	out, err := s.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// HasStagedChanges checks the staging area. git exits 1 when the
// cached diff is non-empty.
func (s *GitService) HasStagedChanges(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	if s.workDir != "" {
		cmd.Dir = s.workDir
	}
	err := cmd.Run()
	return err != nil && cmd.ProcessState != nil && cmd.ProcessState.ExitCode() == 1
}

// GetStagedChangesContext collects everything the pipeline needs from
// the repository in one call. It fails with an InputError before any
// network work happens when there is nothing to commit.
func (s *GitService) GetStagedChangesContext(ctx context.Context) (*models.StagedContext, error) {
	if !s.isRepository(ctx) {
		return nil, domainerrors.NewInputError("the current directory is not a git repository")
	}

	diff, err := s.run(ctx, "diff", "--cached")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(diff) == "" {
		return nil, domainerrors.NewInputError("no staged changes")
	}

	filesOut, err := s.run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	files := splitLines(filesOut)

	branch, err := s.run(ctx, "branch", "--show-current")
	if err != nil {
		return nil, err
	}

	// A repo with no commits yet has no log; that is not an error.
	recentOut, err := s.run(ctx, "log", fmt.Sprintf("-n%d", recentCommitLimit), "--pretty=%s", "--no-merges")
	var recent []string
	if err == nil {
		recent = splitLines(recentOut)
	}

	return &models.StagedContext{
		Diff:          diff,
		Files:         files,
		Branch:        strings.TrimSpace(branch),
		RecentCommits: recent,
	}, nil
}

// GetExistingScopes parses type(scope): prefixes out of recent history,
// first seen first, deduplicated.
func (s *GitService) GetExistingScopes(ctx context.Context) ([]string, error) {
	out, err := s.run(ctx, "log", fmt.Sprintf("-n%d", scopeHistoryLimit), "--pretty=%s", "--no-merges")
	if err != nil {
		// No history yet; suggest nothing.
		return nil, nil
	}
	return parseScopes(splitLines(out)), nil
}

func (s *GitService) CreateCommit(ctx context.Context, message string) error {
	if !s.HasStagedChanges(ctx) {
		return domainerrors.NewInputError("no staged changes")
	}

	cmd := exec.CommandContext(ctx, "git", "commit", "-m", message)
	if s.workDir != "" {
		cmd.Dir = s.workDir
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git commit: %v: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func parseScopes(subjects []string) []string {
	seen := make(map[string]bool)
	var scopes []string
	for _, subject := range subjects {
		matches := conventionalScopeRegex.FindStringSubmatch(subject)
		if len(matches) < 2 {
			continue
		}
		scope := strings.TrimSpace(matches[1])
		if scope == "" || seen[scope] {
			continue
		}
		seen[scope] = true
		scopes = append(scopes, scope)
	}
	return scopes
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
