package examples

import "github.com/Tomas-vilte/CommitSage/internal/domain/models"

func intPtr(v int) *int { return &v }

// Corpus returns the curated few-shot examples. The slice order is
// stable and part of the selector's tie-break contract; append new
// entries at the end.
func Corpus() []models.CommitExample {
	return []models.CommitExample{
		{
			DiffSummary: "1 new file, adds a JWT validation middleware with token parsing helpers",
			Message: models.CommitMessage{
				Type:    "feat",
				Scope:   "auth",
				Subject: "add JWT validation middleware",
				Body:    "Introduce middleware that validates bearer tokens on protected routes and rejects expired or malformed tokens with 401.",
			},
			QualityScore: 5,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternFeatureAddition,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  1,
				HasBody:       true,
			},
		},
		{
			DiffSummary: "3 files, new export command wired into the CLI with flag parsing and output writer",
			Message: models.CommitMessage{
				Type:    "feat",
				Scope:   "cli",
				Subject: "add export command with CSV and JSON output",
			},
			QualityScore: 4,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternFeatureAddition,
				Complexity:    models.ComplexityModerate,
				FilesChanged:  3,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "1 file, off-by-one in pagination offset calculation corrected",
			Message: models.CommitMessage{
				Type:    "fix",
				Scope:   "api",
				Subject: "correct off-by-one in pagination offset",
			},
			QualityScore: 5,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternBugFix,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  1,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "2 files, nil map access on concurrent config reload guarded with a mutex",
			Message: models.CommitMessage{
				Type:    "fix",
				Scope:   "config",
				Subject: "guard config reload against concurrent map access",
				Body:    "Reload replaced the settings map while readers were iterating it. Take the read lock on every lookup and swap the map atomically.",
			},
			QualityScore: 5,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternBugFix,
				Complexity:    models.ComplexityModerate,
				FilesChanged:  2,
				HasBody:       true,
			},
		},
		{
			DiffSummary: "6 files, repository layer split out of the HTTP handlers into its own package",
			Message: models.CommitMessage{
				Type:    "refactor",
				Scope:   "storage",
				Subject: "extract repository layer from HTTP handlers",
				Body:    "Handlers now depend on a Repository interface instead of SQL directly, so storage can be swapped in tests.",
			},
			QualityScore: 4,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternRefactoring,
				Complexity:    models.ComplexityComplex,
				FilesChanged:  6,
				HasBody:       true,
			},
		},
		{
			DiffSummary: "1 file, duplicated validation helpers merged into a single generic function",
			Message: models.CommitMessage{
				Type:    "refactor",
				Subject: "deduplicate field validation helpers",
			},
			QualityScore: 3,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternRefactoring,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  1,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "2 test files covering retry backoff edge cases added",
			Message: models.CommitMessage{
				Type:    "test",
				Scope:   "retry",
				Subject: "cover backoff jitter and max-attempt edge cases",
			},
			QualityScore: 4,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternTestAddition,
				Complexity:    models.ComplexityModerate,
				FilesChanged:  2,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "1 file, query result cached per request to avoid repeated lookups in a hot loop",
			Message: models.CommitMessage{
				Type:    "perf",
				Scope:   "query",
				Subject: "cache per-request lookup results",
				Body:    "The planner resolved the same table metadata once per row. Memoize it for the lifetime of the request.",
			},
			QualityScore: 4,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternPerformance,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  1,
				HasBody:       true,
			},
		},
		{
			DiffSummary: "README and contributing guide updated with new build instructions",
			Message: models.CommitMessage{
				Type:    "docs",
				Subject: "update build instructions for Go 1.23",
			},
			QualityScore: 3,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternDocumentation,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  2,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "4 files, unchecked errors from file operations now wrapped and propagated",
			Message: models.CommitMessage{
				Type:    "fix",
				Scope:   "io",
				Subject: "propagate errors from temp file cleanup",
				Body:    "Cleanup errors were silently dropped, masking disk-full conditions. Wrap and return them to the caller.",
			},
			QualityScore: 4,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternErrorHandling,
				Complexity:    models.ComplexityModerate,
				FilesChanged:  4,
				HasBody:       true,
			},
		},
		{
			DiffSummary: "1 file, new request/response DTO types for the billing endpoint",
			Message: models.CommitMessage{
				Type:    "feat",
				Scope:   "billing",
				Subject: "define invoice request and response types",
			},
			QualityScore: 3,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternTypeDefinition,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  1,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "go.mod and go.sum bump two direct dependencies to patch releases",
			Message: models.CommitMessage{
				Type:    "build",
				Scope:   "deps",
				Subject: "bump testify and cli to latest patch releases",
			},
			QualityScore: 3,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternDependencyChange,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  2,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "12 files, breaking rename of the public Client constructor and option setters",
			Message: models.CommitMessage{
				Type:                "refactor",
				Scope:               "client",
				Subject:             "rename NewClient options to functional style",
				Breaking:            true,
				BreakingDescription: "NewClient now takes Option funcs; the Config struct constructor was removed.",
				Confidence:          intPtr(90),
			},
			QualityScore: 5,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternRefactoring,
				Complexity:    models.ComplexityComplex,
				FilesChanged:  12,
				HasBody:       false,
			},
		},
		{
			DiffSummary: "CI workflow matrix extended with a race-detector job",
			Message: models.CommitMessage{
				Type:    "ci",
				Subject: "run tests under the race detector",
			},
			QualityScore: 3,
			Analysis: models.ExampleAnalysis{
				ChangePattern: models.PatternConfiguration,
				Complexity:    models.ComplexitySimple,
				FilesChanged:  1,
				HasBody:       false,
			},
		},
	}
}
