package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

// MaxSubjectLength is the hard cap on a generated commit subject.
const MaxSubjectLength = 100

var fenceRegex = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")

// ExtractJSON pulls the first valid JSON object out of free-form model
// output. Two-phase, best effort: fenced code blocks are tried first,
// then balanced-brace scanning over the whole text. Brace counting is
// string-aware so braces inside string values don't fool it.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	matches := fenceRegex.FindAllStringSubmatch(text, -1)
	var bestFenced string
	for _, m := range matches {
		if len(m) > 1 {
			candidate := SanitizeJSON(strings.TrimSpace(m[1]))
			if json.Valid([]byte(candidate)) && len(candidate) > len(bestFenced) {
				bestFenced = candidate
			}
		}
	}
	if bestFenced != "" {
		return bestFenced
	}

	var bestBlock string
	for i := 0; i < len(text); {
		startIdx := strings.IndexAny(text[i:], "{[")
		if startIdx == -1 {
			break
		}
		startIdx += i

		opener := text[startIdx]
		var closer byte
		if opener == '{' {
			closer = '}'
		} else {
			closer = ']'
		}

		count := 0
		inString := false
		escaped := false
		endIdx := -1

		for j := startIdx; j < len(text); j++ {
			char := text[j]
			if escaped {
				escaped = false
				continue
			}
			if char == '\\' {
				escaped = true
				continue
			}
			if char == '"' {
				inString = !inString
				continue
			}
			if inString {
				continue
			}
			if char == opener {
				count++
			} else if char == closer {
				count--
				if count == 0 {
					endIdx = j
					break
				}
			}
		}

		if endIdx >= 0 {
			candidate := SanitizeJSON(text[startIdx : endIdx+1])
			if json.Valid([]byte(candidate)) && len(candidate) > len(bestBlock) {
				bestBlock = candidate
			}
			i = endIdx + 1
		} else {
			i = startIdx + 1
		}
	}

	if bestBlock != "" {
		return bestBlock
	}
	return SanitizeJSON(text)
}

var jsonStringRegex = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)

// SanitizeJSON escapes raw newlines inside string literals, a common
// model output defect.
func SanitizeJSON(s string) string {
	return jsonStringRegex.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "\n", "\\n")
	})
}

// ParseCommitMessage extracts and validates the structured commit
// message a backend returned. provider names the backend in errors.
func ParseCommitMessage(provider, raw string) (*models.CommitMessage, error) {
	content := ExtractJSON(raw)

	var message models.CommitMessage
	if err := json.Unmarshal([]byte(content), &message); err != nil {
		return nil, domainerrors.NewResponseParseError(provider, raw)
	}

	if err := validateCommitMessage(provider, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func validateCommitMessage(provider string, message *models.CommitMessage) error {
	message.Type = strings.TrimSpace(message.Type)
	message.Subject = strings.TrimSpace(message.Subject)

	if message.Type == "" {
		return domainerrors.NewGenerationError(provider, "response is missing the commit type", nil)
	}
	if message.Subject == "" {
		return domainerrors.NewGenerationError(provider, "response is missing the commit subject", nil)
	}
	if len(message.Subject) > MaxSubjectLength {
		return domainerrors.NewGenerationError(provider, "commit subject exceeds 100 characters", nil)
	}
	if message.Confidence != nil && (*message.Confidence < 0 || *message.Confidence > 100) {
		return domainerrors.NewGenerationError(provider, "confidence outside the 0-100 range", nil)
	}
	return nil
}
