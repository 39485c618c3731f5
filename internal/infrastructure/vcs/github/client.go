package github

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"

	"github.com/Tomas-vilte/CommitSage/internal/domain/ports"
)

var _ ports.IssueReader = (*Client)(nil)

// branchIssueRegex matches issue references embedded in branch names,
// e.g. feature/123-add-login or fix-#42.
var branchIssueRegex = regexp.MustCompile(`#?(\d+)`)

// Client reads issue context from GitHub so the pipeline can mention
// what a branch is actually about.
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

func NewClient(owner, repo, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}
}

// GetIssueContext fetches the issue title, state and labels as a short
// text block for the generation prompt.
func (c *Client) GetIssueContext(ctx context.Context, number int) (string, error) {
	issue, _, err := c.client.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return "", fmt.Errorf("fetching issue #%d: %w", number, err)
	}
	if issue == nil {
		return "", fmt.Errorf("issue #%d not found", number)
	}

	var labels []string
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("#%d: %s", number, issue.GetTitle()))
	if len(labels) > 0 {
		b.WriteString(fmt.Sprintf(" [%s]", strings.Join(labels, ", ")))
	}
	return b.String(), nil
}

// IssueNumberFromBranch extracts the first numeric issue reference from
// a branch name. Returns 0 when there is none.
func IssueNumberFromBranch(branch string) int {
	matches := branchIssueRegex.FindStringSubmatch(branch)
	if len(matches) < 2 {
		return 0
	}
	var number int
	_, err := fmt.Sscanf(matches[1], "%d", &number)
	if err != nil {
		return 0
	}
	return number
}
