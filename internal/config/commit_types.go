package config

import "github.com/Tomas-vilte/CommitSage/internal/domain/models"

// DefaultCommitTypes is the conventional commit vocabulary used when
// the user has not customized it.
func DefaultCommitTypes() []models.CommitType {
	return []models.CommitType{
		{Value: "feat", Name: "Features", Description: "A new feature"},
		{Value: "fix", Name: "Bug Fixes", Description: "A bug fix"},
		{Value: "docs", Name: "Documentation", Description: "Documentation only changes"},
		{Value: "style", Name: "Styles", Description: "Changes that do not affect the meaning of the code"},
		{Value: "refactor", Name: "Code Refactoring", Description: "A code change that neither fixes a bug nor adds a feature"},
		{Value: "perf", Name: "Performance Improvements", Description: "A code change that improves performance"},
		{Value: "test", Name: "Tests", Description: "Adding missing tests or correcting existing tests"},
		{Value: "build", Name: "Builds", Description: "Changes that affect the build system or external dependencies"},
		{Value: "ci", Name: "Continuous Integration", Description: "Changes to CI configuration files and scripts"},
		{Value: "chore", Name: "Chores", Description: "Other changes that don't modify src or test files"},
	}
}

// CommitTypeValues flattens the vocabulary into the form prompts embed.
func CommitTypeValues(types []models.CommitType) []string {
	values := make([]string, 0, len(types))
	for _, t := range types {
		values = append(values, t.Value)
	}
	return values
}
