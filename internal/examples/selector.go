package examples

import (
	"sort"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

// DefaultK is how many examples the pipeline embeds in a prompt.
const DefaultK = 5

// Scoring weights. The absolute values are arbitrary; only the
// relative ordering they induce matters.
const (
	patternMatchScore      = 10
	complexityMatchScore   = 5
	exactFileCountScore    = 3
	closeFileCountScore    = 1
	closeFileCountDistance = 2
)

// Select ranks the corpus against the diff summary and returns the top
// k examples, highest score first. Pure function: no I/O, ties break
// on corpus insertion order.
func Select(summary models.DiffSummary, corpus []models.CommitExample, k int) []models.CommitExample {
	if k <= 0 {
		k = DefaultK
	}
	if len(corpus) == 0 {
		return nil
	}

	type scored struct {
		example models.CommitExample
		score   int
	}

	ranked := make([]scored, 0, len(corpus))
	for _, example := range corpus {
		ranked = append(ranked, scored{example: example, score: score(summary, example)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	selected := make([]models.CommitExample, 0, k)
	for _, entry := range ranked[:k] {
		selected = append(selected, entry.example)
	}
	return selected
}

func score(summary models.DiffSummary, example models.CommitExample) int {
	total := example.QualityScore

	if example.Analysis.ChangePattern == summary.DominantPattern() {
		total += patternMatchScore
	}
	if example.Analysis.Complexity == summary.Complexity {
		total += complexityMatchScore
	}

	delta := summary.FilesChanged - example.Analysis.FilesChanged
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta == 0:
		total += exactFileCountScore
	case delta <= closeFileCountDistance:
		total += closeFileCountScore
	}

	return total
}
