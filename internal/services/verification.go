package services

import (
	"regexp"
	"strings"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

const maxMissingSymbolsReported = 5

// identifierRegex matches tokens that read like code identifiers:
// camelCase, snake_case, dotted paths, or plain names followed by ().
var identifierRegex = regexp.MustCompile("`?([A-Za-z_][A-Za-z0-9_.]*)\\(\\)`?|`([A-Za-z_][A-Za-z0-9_.]*)`|\\b([a-z]+[A-Z][A-Za-z0-9]*)\\b|\\b([A-Za-z][A-Za-z0-9]*_[A-Za-z0-9_]+)\\b")

// verifyMessage cross-checks the identifiers a message names against
// the diff. Pure function: it never calls the provider, so it cannot
// fail, only report.
func verifyMessage(message models.CommitMessage, genCtx models.GenerationContext) models.VerificationRecord {
	text := message.Subject + "\n" + message.Body

	mentioned := extractMentionedIdentifiers(text)

	var hallucinated []string
	for _, name := range mentioned {
		if !strings.Contains(genCtx.Diff, name) {
			hallucinated = append(hallucinated, name)
		}
	}

	lowerText := strings.ToLower(text)
	var missing []string
	for _, sym := range genCtx.Summary.ModifiedSymbols {
		if !strings.Contains(lowerText, strings.ToLower(sym.Name)) {
			missing = append(missing, sym.Name)
		}
		if len(missing) >= maxMissingSymbolsReported {
			break
		}
	}

	accuracy := 100
	accuracy -= 30 * len(hallucinated)
	if penalty := 10 * len(missing); penalty > 30 {
		accuracy -= 30
	} else {
		accuracy -= penalty
	}
	if accuracy < 0 {
		accuracy = 0
	}

	return models.VerificationRecord{
		FactualAccuracy:     accuracy,
		HallucinatedSymbols: hallucinated,
		MissingSymbols:      missing,
		HasCriticalIssues:   len(hallucinated) > 0,
	}
}

func extractMentionedIdentifiers(text string) []string {
	seen := make(map[string]bool)
	var identifiers []string

	for _, match := range identifierRegex.FindAllStringSubmatch(text, -1) {
		var name string
		for _, group := range match[1:] {
			if group != "" {
				name = group
				break
			}
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		identifiers = append(identifiers, name)
	}
	return identifiers
}
