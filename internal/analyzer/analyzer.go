package analyzer

import (
	"regexp"
	"strings"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/Tomas-vilte/CommitSage/internal/domain/ports"
)

var diffGitLineRegex = regexp.MustCompile(`^diff --git a/(\S+) b/(\S+)`)

// Analyzer turns unified diff text into a structural summary. Analyze
// is a pure function of its inputs: identical diff text always yields
// an identical summary.
type Analyzer struct {
	extractor ports.SymbolExtractor
}

type Option func(*Analyzer)

// WithSymbolExtractor plugs in a syntax-aware extractor. Files it does
// not support fall back to the built-in line heuristics.
func WithSymbolExtractor(extractor ports.SymbolExtractor) Option {
	return func(a *Analyzer) {
		a.extractor = extractor
	}
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fileSection is one file's slice of the diff.
type fileSection struct {
	path    string
	status  string
	added   int
	removed int
	content string
}

// Analyze parses the diff into per-file sections, extracts touched
// symbols, detects change patterns and assigns a complexity tier.
// Malformed sections are never fatal: they are skipped and counted.
func (a *Analyzer) Analyze(diffText string, files []string) models.DiffSummary {
	sections, skipped := splitFileSections(diffText)

	summary := models.DiffSummary{
		SkippedSections: skipped,
	}

	seen := make(map[string]bool)
	for _, section := range sections {
		summary.FilesChanged++
		summary.LinesAdded += section.added
		summary.LinesRemoved += section.removed
		summary.Files = append(summary.Files, models.FileChange{
			Path:    section.path,
			Status:  section.status,
			Added:   section.added,
			Removed: section.removed,
		})

		for _, sym := range a.extractSymbols(section) {
			key := sym.File + "\x00" + string(sym.Kind) + "\x00" + sym.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			summary.ModifiedSymbols = append(summary.ModifiedSymbols, sym)
		}
	}

	// The staged file list can name files the diff text does not cover
	// (binary files, mode-only changes). Count them so the tiering
	// reflects the real breadth of the change.
	if len(files) > summary.FilesChanged {
		summary.FilesChanged = len(files)
	}

	summary.ChangePatterns = detectPatterns(sections, summary)
	summary.Complexity = classifyComplexity(summary.FilesChanged, len(summary.ModifiedSymbols))

	return summary
}

func (a *Analyzer) extractSymbols(section fileSection) []models.Symbol {
	if a.extractor != nil && a.extractor.Supports(section.path) {
		return a.extractor.Extract(section.path, section.content)
	}
	return extractSymbolsHeuristic(section.path, section.content)
}

// splitFileSections chunks the diff at "diff --git" boundaries. A chunk
// whose header cannot be parsed is dropped and reported in the second
// return value.
func splitFileSections(diffText string) ([]fileSection, int) {
	if strings.TrimSpace(diffText) == "" {
		return nil, 0
	}

	parts := regexp.MustCompile(`(?m)^diff --git`).Split(diffText, -1)

	var sections []fileSection
	skipped := 0
	for i, part := range parts {
		if i == 0 && !strings.HasPrefix(diffText, "diff --git") {
			// Preamble before the first file header carries no hunks.
			continue
		}
		if strings.TrimSpace(part) == "" {
			continue
		}
		content := "diff --git" + part

		section, ok := parseFileSection(content)
		if !ok {
			skipped++
			continue
		}
		sections = append(sections, section)
	}

	return sections, skipped
}

func parseFileSection(content string) (fileSection, bool) {
	section := fileSection{
		status:  "modified",
		content: content,
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			if matches := diffGitLineRegex.FindStringSubmatch(line); len(matches) >= 3 {
				section.path = matches[2]
			}
		case strings.HasPrefix(line, "new file mode"):
			section.status = "added"
		case strings.HasPrefix(line, "deleted file mode"):
			section.status = "deleted"
		case strings.HasPrefix(line, "rename from"):
			section.status = "renamed"
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			section.added++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			section.removed++
		}
	}

	if section.path == "" {
		return fileSection{}, false
	}
	return section, true
}

// classifyComplexity applies fixed thresholds over the files-changed
// and symbol counts.
func classifyComplexity(filesChanged, symbolCount int) models.Complexity {
	switch {
	case filesChanged <= 1 && symbolCount <= 3:
		return models.ComplexitySimple
	case filesChanged <= 5 && symbolCount <= 10:
		return models.ComplexityModerate
	default:
		return models.ComplexityComplex
	}
}
