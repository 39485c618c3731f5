package models

// Complexity is a coarse tier derived from file and symbol counts.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// PatternType labels the nature of a change inferred from the diff.
type PatternType string

const (
	PatternFeatureAddition  PatternType = "feature_addition"
	PatternBugFix           PatternType = "bug_fix"
	PatternRefactoring      PatternType = "refactoring"
	PatternPerformance      PatternType = "performance"
	PatternTestAddition     PatternType = "test_addition"
	PatternDocumentation    PatternType = "documentation"
	PatternErrorHandling    PatternType = "error_handling"
	PatternTypeDefinition   PatternType = "type_definition"
	PatternDependencyChange PatternType = "dependency_change"
	PatternConfiguration    PatternType = "configuration"
)

// SymbolKind classifies a touched declaration.
type SymbolKind string

const (
	SymbolFunction SymbolKind = "function"
	SymbolMethod   SymbolKind = "method"
	SymbolClass    SymbolKind = "class"
	SymbolConst    SymbolKind = "const"
)

type (
	// Symbol is one declaration the diff touches.
	Symbol struct {
		Name string
		Kind SymbolKind
		File string
	}

	// Pattern is a detected change pattern, ordered by relevance.
	Pattern struct {
		Type        PatternType
		Description string
	}

	FileChange struct {
		Path    string
		Status  string // added, modified, deleted, renamed
		Added   int
		Removed int
	}

	// DiffSummary is the structural analysis of a staged diff.
	DiffSummary struct {
		FilesChanged    int
		LinesAdded      int
		LinesRemoved    int
		Files           []FileChange
		ModifiedSymbols []Symbol
		ChangePatterns  []Pattern
		Complexity      Complexity
		SkippedSections int
	}
)

// DominantPattern returns the highest-ranked change pattern, or the
// empty string when analysis found none.
func (s DiffSummary) DominantPattern() PatternType {
	if len(s.ChangePatterns) == 0 {
		return ""
	}
	return s.ChangePatterns[0].Type
}
