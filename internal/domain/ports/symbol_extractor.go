package ports

import "github.com/Tomas-vilte/CommitSage/internal/domain/models"

// SymbolExtractor is a pluggable syntax-aware analyzer. The structural
// analyzer consults it per file and falls back to line heuristics when
// the language is not supported.
type SymbolExtractor interface {
	// Supports reports whether the extractor understands the file.
	Supports(path string) bool

	// Extract returns the symbols touched by the file's diff content.
	Extract(path, fileDiff string) []models.Symbol
}
