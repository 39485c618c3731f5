package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueNumberFromBranch(t *testing.T) {
	cases := []struct {
		branch string
		want   int
	}{
		{"feature/123-add-login", 123},
		{"fix-#42", 42},
		{"42-quick-fix", 42},
		{"main", 0},
		{"feature/no-issue-here", 0},
		{"", 0},
	}

	for _, tc := range cases {
		t.Run(tc.branch, func(t *testing.T) {
			assert.Equal(t, tc.want, IssueNumberFromBranch(tc.branch))
		})
	}
}
