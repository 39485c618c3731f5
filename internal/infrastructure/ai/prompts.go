package ai

import (
	"fmt"
	"strings"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

// maxRecentCommits caps how many recent subjects a prompt embeds.
const maxRecentCommits = 5

// BuildCommitSystemPrompt embeds the allowed types and the required
// output schema. Every backend shares it.
func BuildCommitSystemPrompt(types []models.CommitType, includeScope bool) string {
	var b strings.Builder
	b.WriteString(`You are a git commit message generator. You write conventional commit messages that describe what changed and why, in imperative mood, lowercase subject, no trailing period.

Allowed commit types:
`)
	for _, t := range types {
		b.WriteString(fmt.Sprintf("- %s: %s\n", t.Value, t.Description))
	}

	if includeScope {
		b.WriteString("\nInclude a short scope when the change is clearly confined to one area. Prefer the suggested scopes when one fits.\n")
	} else {
		b.WriteString("\nDo not include a scope.\n")
	}

	b.WriteString(`
Respond with ONLY one JSON object, no markdown fences, with these fields:
{
  "type": "one of the allowed types",
  "scope": "optional short scope or empty string",
  "subject": "imperative summary, at most 100 characters",
  "body": "optional explanation of what and why, empty string if the subject suffices",
  "breaking": false,
  "breakingDescription": "required only when breaking is true",
  "confidence": 0,
  "reasoning": "one sentence on why this type and subject"
}
The confidence field is your own 0-100 estimate of how well the message captures the change.`)
	return b.String()
}

// BuildCommitUserPrompt assembles the per-call context: the diff in an
// escaped block plus XML-tagged sections for everything else.
func BuildCommitUserPrompt(genCtx models.GenerationContext) string {
	var b strings.Builder

	b.WriteString("Write a commit message for the following staged changes.\n\n")
	b.WriteString("<diff>\n")
	b.WriteString(genCtx.Diff)
	b.WriteString("\n</diff>\n\n")

	b.WriteString(fmt.Sprintf("<branch>%s</branch>\n\n", genCtx.Branch))

	if len(genCtx.Files) > 0 {
		b.WriteString("<files>\n")
		for _, file := range genCtx.Files {
			b.WriteString(fmt.Sprintf("- %s\n", file))
		}
		b.WriteString("</files>\n\n")
	}

	if len(genCtx.Scopes) > 0 {
		b.WriteString("<suggested_scopes>\n")
		for _, scope := range genCtx.Scopes {
			b.WriteString(fmt.Sprintf("- %s\n", scope))
		}
		b.WriteString("</suggested_scopes>\n\n")
	}

	if recent := capRecent(genCtx.RecentCommits); len(recent) > 0 {
		b.WriteString("<recent_commits>\n")
		for _, subject := range recent {
			b.WriteString(fmt.Sprintf("- %s\n", subject))
		}
		b.WriteString("</recent_commits>\n\n")
	}

	b.WriteString(formatSummary(genCtx.Summary))

	if len(genCtx.Examples) > 0 {
		b.WriteString("<examples>\n")
		for _, example := range genCtx.Examples {
			b.WriteString(fmt.Sprintf("Change: %s\nMessage: %s\n\n", example.DiffSummary, example.Message.Format()))
		}
		b.WriteString("</examples>\n\n")
	}

	if genCtx.Reasoning != nil {
		b.WriteString("<analysis>\n")
		b.WriteString(fmt.Sprintf("Architectural context: %s\n", genCtx.Reasoning.ArchitecturalContext))
		b.WriteString(fmt.Sprintf("Change intention: %s\n", genCtx.Reasoning.ChangeIntention))
		b.WriteString(fmt.Sprintf("Change nature: %s\n", genCtx.Reasoning.ChangeNature))
		if len(genCtx.Reasoning.KeySymbols) > 0 {
			b.WriteString(fmt.Sprintf("Key symbols: %s\n", strings.Join(genCtx.Reasoning.KeySymbols, ", ")))
		}
		if genCtx.Reasoning.SuggestedType != "" {
			b.WriteString(fmt.Sprintf("Suggested type: %s\n", genCtx.Reasoning.SuggestedType))
		}
		b.WriteString("</analysis>\n\n")
	}

	if genCtx.SemanticSummary != "" {
		b.WriteString("<semantic_summary>\n")
		b.WriteString(genCtx.SemanticSummary)
		b.WriteString("\n</semantic_summary>\n\n")
	}

	if genCtx.IssueContext != "" {
		b.WriteString("<issue>\n")
		b.WriteString(genCtx.IssueContext)
		b.WriteString("\n</issue>\n\n")
	}

	b.WriteString("Return the JSON object now.")
	return b.String()
}

func formatSummary(summary models.DiffSummary) string {
	if summary.FilesChanged == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<structure>\n")
	b.WriteString(fmt.Sprintf("Files changed: %d (+%d/-%d lines), complexity: %s\n",
		summary.FilesChanged, summary.LinesAdded, summary.LinesRemoved, summary.Complexity))
	if dominant := summary.DominantPattern(); dominant != "" {
		b.WriteString(fmt.Sprintf("Dominant change pattern: %s\n", dominant))
	}
	if len(summary.ModifiedSymbols) > 0 {
		names := make([]string, 0, len(summary.ModifiedSymbols))
		for _, sym := range summary.ModifiedSymbols {
			names = append(names, fmt.Sprintf("%s (%s)", sym.Name, sym.Kind))
		}
		b.WriteString(fmt.Sprintf("Touched symbols: %s\n", strings.Join(names, ", ")))
	}
	b.WriteString("</structure>\n\n")
	return b.String()
}

func capRecent(commits []string) []string {
	if len(commits) > maxRecentCommits {
		return commits[:maxRecentCommits]
	}
	return commits
}

// BuildReflectionPrompts asks the backend to self-score a candidate
// message against fixed criteria.
func BuildReflectionPrompts(genCtx models.GenerationContext, candidate models.CommitMessage) (system, user string) {
	system = `You are a commit message reviewer. Score the candidate message against the diff on these criteria, each 0-100:
- semantic_accuracy: the message describes what actually changed
- specificity: it names the concrete behavior or component, not vague words
- completeness: nothing important in the diff is left unexplained
- format: conventional commit shape, imperative mood, subject length

Respond with ONLY one JSON object:
{
  "decision": "accept" or "refine",
  "qualityScore": 0,
  "criteriaScores": {"semantic_accuracy": 0, "specificity": 0, "completeness": 0, "format": 0},
  "issues": ["..."],
  "improvements": ["..."]
}
Accept only when every criterion is at least 70 and the overall quality is at least 80.`

	user = fmt.Sprintf("Candidate commit message:\n\n%s\n\n<diff>\n%s\n</diff>\n\nScore it and decide.",
		candidate.Format(), genCtx.Diff)
	return system, user
}

// BuildReasoningPrompts asks for the optional pre-generation analysis.
func BuildReasoningPrompts(genCtx models.GenerationContext) (system, user string) {
	system = fmt.Sprintf(`You analyze code diffs before a commit message is written. Respond with ONLY one JSON object:
{
  "architecturalContext": "where in the system this change lives",
  "changeIntention": "what the author is trying to achieve",
  "changeNature": "feature, fix, refactor, etc., in your own words",
  "keySymbols": ["most important touched identifiers"],
  "suggestedType": "the best fit among: %s"
}`, strings.Join(config.CommitTypeValues(genCtx.CommitTypes), ", "))

	user = fmt.Sprintf("<diff>\n%s\n</diff>\n\n<branch>%s</branch>\n\nAnalyze this change.",
		genCtx.Diff, genCtx.Branch)
	return system, user
}

// BuildSummarizationPrompts compresses an oversized diff into a short
// architectural description.
func BuildSummarizationPrompts(diff string, files []string) (system, user string) {
	system = "You summarize large code diffs. Describe the architectural intent of the change in at most five sentences. Plain text, no JSON, no markdown."

	var b strings.Builder
	b.WriteString("<files>\n")
	for _, file := range files {
		b.WriteString(fmt.Sprintf("- %s\n", file))
	}
	b.WriteString("</files>\n\n<diff>\n")
	b.WriteString(diff)
	b.WriteString("\n</diff>\n\nSummarize this change.")
	return system, b.String()
}

// BuildRefinementPrompts regenerates the message with reflection and
// verification findings folded in.
func BuildRefinementPrompts(genCtx models.GenerationContext, candidate models.CommitMessage, reflection models.ReflectionRecord, verification *models.VerificationRecord, types []models.CommitType, includeScope bool) (system, user string) {
	system = BuildCommitSystemPrompt(types, includeScope)

	var b strings.Builder
	b.WriteString(BuildCommitUserPrompt(genCtx))
	b.WriteString("\n\nA previous attempt produced:\n\n")
	b.WriteString(candidate.Format())
	b.WriteString("\n\nReview feedback to address:\n")
	for _, issue := range reflection.Issues {
		b.WriteString(fmt.Sprintf("- issue: %s\n", issue))
	}
	for _, improvement := range reflection.Improvements {
		b.WriteString(fmt.Sprintf("- improvement: %s\n", improvement))
	}
	if verification != nil {
		if len(verification.HallucinatedSymbols) > 0 {
			b.WriteString(fmt.Sprintf("- remove mentions of symbols not in the diff: %s\n",
				strings.Join(verification.HallucinatedSymbols, ", ")))
		}
		if len(verification.MissingSymbols) > 0 {
			b.WriteString(fmt.Sprintf("- consider mentioning: %s\n",
				strings.Join(verification.MissingSymbols, ", ")))
		}
	}
	b.WriteString("\nReturn an improved JSON object now.")
	return system, b.String()
}
