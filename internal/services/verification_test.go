package services

import (
	"fmt"
	"testing"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func verificationContext(diff string, symbols ...string) models.GenerationContext {
	genCtx := models.GenerationContext{Diff: diff}
	for _, name := range symbols {
		genCtx.Summary.ModifiedSymbols = append(genCtx.Summary.ModifiedSymbols, models.Symbol{
			Name: name,
			Kind: models.SymbolFunction,
			File: "src/widget.ts",
		})
	}
	return genCtx
}

func TestVerifyMessage(t *testing.T) {
	t.Run("message grounded in the diff passes clean", func(t *testing.T) {
		genCtx := verificationContext("+export function renderWidget() {", "renderWidget")
		message := models.CommitMessage{
			Type:    "feat",
			Subject: "add renderWidget helper",
		}

		record := verifyMessage(message, genCtx)

		assert.Empty(t, record.HallucinatedSymbols)
		assert.Empty(t, record.MissingSymbols)
		assert.False(t, record.HasCriticalIssues)
		assert.Equal(t, 100, record.FactualAccuracy)
	})

	t.Run("identifier absent from the diff is flagged as hallucinated", func(t *testing.T) {
		genCtx := verificationContext("+export function renderWidget() {", "renderWidget")
		message := models.CommitMessage{
			Type:    "fix",
			Subject: "update parseConfig logic",
		}

		record := verifyMessage(message, genCtx)

		assert.Equal(t, []string{"parseConfig"}, record.HallucinatedSymbols)
		assert.Equal(t, []string{"renderWidget"}, record.MissingSymbols)
		assert.True(t, record.HasCriticalIssues)
		assert.Equal(t, 60, record.FactualAccuracy)
	})

	t.Run("missing symbols are capped and the penalty is bounded", func(t *testing.T) {
		var symbols []string
		for i := 0; i < 8; i++ {
			symbols = append(symbols, fmt.Sprintf("helperFn%d", i))
		}
		genCtx := verificationContext("+some unrelated change", symbols...)
		message := models.CommitMessage{
			Type:    "refactor",
			Subject: "reorganize module layout",
		}

		record := verifyMessage(message, genCtx)

		assert.Len(t, record.MissingSymbols, maxMissingSymbolsReported)
		assert.False(t, record.HasCriticalIssues)
		assert.Equal(t, 70, record.FactualAccuracy)
	})

	t.Run("symbol mention is case insensitive", func(t *testing.T) {
		genCtx := verificationContext("+func RetryPolicy() {}", "RetryPolicy")
		message := models.CommitMessage{
			Type:    "feat",
			Subject: "introduce retrypolicy for transient failures",
		}

		record := verifyMessage(message, genCtx)

		assert.Empty(t, record.MissingSymbols)
	})

	t.Run("accuracy never drops below zero", func(t *testing.T) {
		genCtx := verificationContext("+nothing relevant here")
		message := models.CommitMessage{
			Type:    "feat",
			Subject: "wire cacheStore, evictEntry and flushAll together",
			Body:    "also touches rebuildIndex and compactSegments",
		}

		record := verifyMessage(message, genCtx)

		assert.True(t, record.HasCriticalIssues)
		assert.Equal(t, 0, record.FactualAccuracy)
	})
}

func TestExtractMentionedIdentifiers(t *testing.T) {
	t.Run("picks up camelCase, snake_case, backticks and call syntax", func(t *testing.T) {
		text := "rework `cache` so that loadEntry() respects max_retries and retryDelay"

		identifiers := extractMentionedIdentifiers(text)

		assert.Contains(t, identifiers, "cache")
		assert.Contains(t, identifiers, "loadEntry")
		assert.Contains(t, identifiers, "max_retries")
		assert.Contains(t, identifiers, "retryDelay")
	})

	t.Run("ignores plain prose words", func(t *testing.T) {
		identifiers := extractMentionedIdentifiers("improve the error messages shown to users")
		assert.Empty(t, identifiers)
	})

	t.Run("deduplicates repeated mentions", func(t *testing.T) {
		identifiers := extractMentionedIdentifiers("renderWidget now memoizes, renderWidget no longer reflows")
		assert.Equal(t, []string{"renderWidget"}, identifiers)
	})
}
