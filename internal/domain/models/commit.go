package models

import (
	"fmt"
	"strings"
)

type (
	// CommitMessage is a structured conventional commit.
	CommitMessage struct {
		Type                string `json:"type"`
		Scope               string `json:"scope,omitempty"`
		Subject             string `json:"subject"`
		Body                string `json:"body,omitempty"`
		Breaking            bool   `json:"breaking,omitempty"`
		BreakingDescription string `json:"breakingDescription,omitempty"`
		Confidence          *int   `json:"confidence,omitempty"`
		Reasoning           string `json:"reasoning,omitempty"`
	}

	// CommitType describes one allowed conventional commit type.
	CommitType struct {
		Value       string `json:"value"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	// StagedContext is what the git collaborator knows about the
	// working tree at generation time.
	StagedContext struct {
		Diff          string
		Files         []string
		Branch        string
		RecentCommits []string
	}
)

// Format renders the message in conventional commit form:
// type(scope)!: subject, blank line, body, blank line, BREAKING CHANGE note.
func (m CommitMessage) Format() string {
	var b strings.Builder
	b.WriteString(m.Type)
	if m.Scope != "" {
		b.WriteString(fmt.Sprintf("(%s)", m.Scope))
	}
	if m.Breaking {
		b.WriteString("!")
	}
	b.WriteString(": ")
	b.WriteString(m.Subject)

	if m.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(m.Body))
	}
	if m.Breaking && m.BreakingDescription != "" {
		b.WriteString("\n\nBREAKING CHANGE: ")
		b.WriteString(m.BreakingDescription)
	}
	return b.String()
}
