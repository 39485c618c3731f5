package truncate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const truncationMarker = "\n... [diff truncated]"

var fileHeaderRegex = regexp.MustCompile(`(?m)^diff --git`)
var diffGitPathRegex = regexp.MustCompile(`^diff --git a/(\S+) b/(\S+)`)

// chunk is one file's complete slice of the diff. Chunks are included
// all-or-nothing; a file's hunks are never sliced.
type chunk struct {
	path    string
	content string
	order   int
}

// Truncate reduces a diff to fit maxChars while keeping every included
// file's hunks whole. Smaller chunks go first: focused changes carry
// more signal per character than sweeping ones. A banner reports which
// files made it in and which were dropped, so the output length is
// bounded by maxChars plus the banner.
func Truncate(diffText string, maxChars int) string {
	if maxChars <= 0 || len(diffText) <= maxChars {
		return diffText
	}

	chunks := splitChunks(diffText)
	if len(chunks) == 0 {
		// No per-file structure to respect; fall back to a hard cut.
		cut := maxChars - len(truncationMarker)
		if cut < 0 {
			cut = 0
		}
		return diffText[:cut] + truncationMarker
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		if len(chunks[i].content) != len(chunks[j].content) {
			return len(chunks[i].content) < len(chunks[j].content)
		}
		return chunks[i].order < chunks[j].order
	})

	var included, excluded []chunk
	total := 0
	for _, c := range chunks {
		if total+len(c.content) <= maxChars {
			included = append(included, c)
			total += len(c.content)
		} else {
			excluded = append(excluded, c)
		}
	}

	// Restore original file order for readability.
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].order < included[j].order
	})

	var b strings.Builder
	b.WriteString(banner(included, excluded))
	for _, c := range included {
		b.WriteString(c.content)
	}
	return b.String()
}

func banner(included, excluded []chunk) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Diff truncated to stay within the size budget: %d of %d file(s) included.\n",
		len(included), len(included)+len(excluded)))
	if len(included) > 0 {
		b.WriteString("# Included: ")
		b.WriteString(strings.Join(paths(included), ", "))
		b.WriteString("\n")
	}
	if len(excluded) > 0 {
		b.WriteString("# Omitted: ")
		b.WriteString(strings.Join(paths(excluded), ", "))
		b.WriteString("\n")
	}
	return b.String()
}

func paths(chunks []chunk) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.path)
	}
	return out
}

func splitChunks(diffText string) []chunk {
	locs := fileHeaderRegex.FindAllStringIndex(diffText, -1)
	if len(locs) == 0 {
		return nil
	}

	var chunks []chunk
	for i, loc := range locs {
		end := len(diffText)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := diffText[loc[0]:end]

		firstLine := content
		if idx := strings.IndexByte(content, '\n'); idx >= 0 {
			firstLine = content[:idx]
		}
		path := "unknown"
		if matches := diffGitPathRegex.FindStringSubmatch(firstLine); len(matches) >= 3 {
			path = matches[2]
		}

		chunks = append(chunks, chunk{
			path:    path,
			content: content,
			order:   i,
		})
	}
	return chunks
}
