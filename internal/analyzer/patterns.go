package analyzer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

var dependencyFiles = map[string]bool{
	"go.mod":            true,
	"go.sum":            true,
	"package.json":      true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"requirements.txt":  true,
	"Pipfile":           true,
	"Cargo.toml":        true,
	"Gemfile":           true,
	"pom.xml":           true,
}

var configExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".toml": true,
	".ini":  true,
	".env":  true,
	".conf": true,
}

var errorHandlingMarkers = []string{
	"if err != nil",
	"try {",
	"try:",
	"catch",
	"except ",
	"rescue",
	"panic(",
	"raise ",
	".catch(",
	"errors.New",
	"fmt.Errorf",
	"throw ",
}

var performanceMarkers = []string{
	"cache",
	"memo",
	"pool",
	"batch",
	"lazy",
	"optimiz",
	"perf",
	"throttle",
	"debounce",
}

// detectPatterns scores each known change pattern against the parsed
// sections and returns them ordered by evidence, strongest first. The
// ordering is deterministic: ties break on a fixed pattern priority.
func detectPatterns(sections []fileSection, summary models.DiffSummary) []models.Pattern {
	scores := make(map[models.PatternType]int)
	var newFiles, testFiles, docFiles, depFiles, confFiles int

	for _, section := range sections {
		base := filepath.Base(section.path)
		ext := strings.ToLower(filepath.Ext(section.path))

		isTest := isTestFile(section.path)
		isDoc := ext == ".md" || ext == ".rst" || strings.HasPrefix(section.path, "docs/")
		isDep := dependencyFiles[base]

		if isTest {
			testFiles++
		}
		if isDoc {
			docFiles++
		}
		if isDep {
			depFiles++
		}
		if configExtensions[ext] && !isDep {
			confFiles++
		}
		// A brand-new test or doc file is not feature evidence.
		if section.status == "added" && !isTest && !isDoc && !isDep {
			newFiles++
		}

		scores[models.PatternErrorHandling] += countAddedMarkers(section.content, errorHandlingMarkers)
		scores[models.PatternPerformance] += countAddedMarkers(section.content, performanceMarkers)
	}

	scores[models.PatternTestAddition] += testFiles * 4
	scores[models.PatternDocumentation] += docFiles * 4
	scores[models.PatternDependencyChange] += depFiles * 4
	scores[models.PatternConfiguration] += confFiles * 3
	scores[models.PatternFeatureAddition] += newFiles * 3

	for _, sym := range summary.ModifiedSymbols {
		if sym.Kind == models.SymbolClass {
			scores[models.PatternTypeDefinition]++
		}
	}

	// Growth-dominant diffs read as features, balanced churn as
	// refactoring, shrink-dominant fixes lean toward bug_fix.
	switch {
	case summary.LinesAdded > summary.LinesRemoved*2:
		scores[models.PatternFeatureAddition] += 2
	case summary.LinesRemoved > 0 && summary.LinesAdded > 0:
		scores[models.PatternRefactoring] += 2
	}
	if newFiles == 0 && summary.LinesAdded > 0 && summary.LinesAdded <= summary.LinesRemoved+10 {
		scores[models.PatternBugFix]++
	}

	ordered := make([]models.PatternType, 0, len(scores))
	for pattern, score := range scores {
		if score > 0 {
			ordered = append(ordered, pattern)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if scores[ordered[i]] != scores[ordered[j]] {
			return scores[ordered[i]] > scores[ordered[j]]
		}
		return patternPriority(ordered[i]) < patternPriority(ordered[j])
	})

	patterns := make([]models.Pattern, 0, len(ordered))
	for _, p := range ordered {
		patterns = append(patterns, models.Pattern{
			Type:        p,
			Description: describePattern(p, summary),
		})
	}

	if len(patterns) == 0 && summary.FilesChanged > 0 {
		patterns = append(patterns, models.Pattern{
			Type:        models.PatternRefactoring,
			Description: describePattern(models.PatternRefactoring, summary),
		})
	}

	return patterns
}

func countAddedMarkers(content string, markers []string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
			continue
		}
		lower := strings.ToLower(line)
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				count++
				break
			}
		}
	}
	return count
}

func isTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, "_test.go") ||
		strings.Contains(base, ".test.") ||
		strings.Contains(base, ".spec.") ||
		strings.HasPrefix(base, "test_") ||
		strings.Contains(path, "/tests/") ||
		strings.Contains(path, "/__tests__/")
}

// patternPriority is the fixed tie-break order when two patterns score
// the same.
func patternPriority(p models.PatternType) int {
	order := []models.PatternType{
		models.PatternFeatureAddition,
		models.PatternBugFix,
		models.PatternTestAddition,
		models.PatternRefactoring,
		models.PatternErrorHandling,
		models.PatternTypeDefinition,
		models.PatternPerformance,
		models.PatternDocumentation,
		models.PatternDependencyChange,
		models.PatternConfiguration,
	}
	for i, candidate := range order {
		if candidate == p {
			return i
		}
	}
	return len(order)
}

func describePattern(p models.PatternType, summary models.DiffSummary) string {
	switch p {
	case models.PatternFeatureAddition:
		return fmt.Sprintf("new functionality across %d file(s)", summary.FilesChanged)
	case models.PatternBugFix:
		return "targeted correction of existing behavior"
	case models.PatternRefactoring:
		return "restructuring without net new behavior"
	case models.PatternPerformance:
		return "changes aimed at runtime efficiency"
	case models.PatternTestAddition:
		return "test coverage changes"
	case models.PatternDocumentation:
		return "documentation changes"
	case models.PatternErrorHandling:
		return "added or changed error paths"
	case models.PatternTypeDefinition:
		return "new or modified type declarations"
	case models.PatternDependencyChange:
		return "dependency manifest changes"
	case models.PatternConfiguration:
		return "configuration file changes"
	default:
		return string(p)
	}
}
