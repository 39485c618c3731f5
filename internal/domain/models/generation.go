package models

import "time"

type (
	// CommitExample is one entry of the curated few-shot corpus.
	CommitExample struct {
		DiffSummary  string
		Message      CommitMessage
		QualityScore int // 1..5
		Analysis     ExampleAnalysis
	}

	ExampleAnalysis struct {
		ChangePattern PatternType
		Complexity    Complexity
		FilesChanged  int
		HasBody       bool
	}

	// GenerationContext is everything a provider gets to see for one
	// generateCommitMessage call.
	GenerationContext struct {
		Diff            string
		Files           []string
		Branch          string
		RecentCommits   []string // subjects only, capped at 5
		CommitTypes     []CommitType
		Scopes          []string
		Summary         DiffSummary
		Examples        []CommitExample
		Reasoning       *ReasoningTrace
		SemanticSummary string
		IssueContext    string
	}

	// ReasoningTrace is the optional pre-generation analysis stage output.
	ReasoningTrace struct {
		ArchitecturalContext string   `json:"architecturalContext"`
		ChangeIntention      string   `json:"changeIntention"`
		ChangeNature         string   `json:"changeNature"`
		KeySymbols           []string `json:"keySymbols"`
		SuggestedType        string   `json:"suggestedType"`
	}

	// TextOptions tunes a free-form GenerateText call.
	TextOptions struct {
		Temperature float32
		MaxTokens   int
		JSONFormat  bool
	}
)

type ReflectionDecision string

const (
	DecisionAccept ReflectionDecision = "accept"
	DecisionRefine ReflectionDecision = "refine"
)

type (
	// ReflectionRecord is the provider's self-assessment of a candidate
	// message, one per reflection iteration.
	ReflectionRecord struct {
		Decision       ReflectionDecision `json:"decision"`
		QualityScore   int                `json:"qualityScore"`
		CriteriaScores map[string]int     `json:"criteriaScores,omitempty"`
		Issues         []string           `json:"issues,omitempty"`
		Improvements   []string           `json:"improvements,omitempty"`
	}

	// VerificationRecord cross-checks the message against the diff.
	VerificationRecord struct {
		FactualAccuracy     int      `json:"factualAccuracy"`
		HallucinatedSymbols []string `json:"hallucinatedSymbols,omitempty"`
		MissingSymbols      []string `json:"missingSymbols,omitempty"`
		HasCriticalIssues   bool     `json:"hasCriticalIssues"`
	}

	PerformanceMetrics struct {
		GenerationTime   time.Duration
		ReflectionTime   time.Duration
		VerificationTime time.Duration
		RefinementTime   time.Duration
		TotalLatency     time.Duration
	}

	// SkippedStage records an optional stage that degraded gracefully.
	SkippedStage struct {
		Stage  string
		Reason string
	}

	// GenerationResult is the pipeline's final output. Iterations counts
	// generation calls and is always >= 1.
	GenerationResult struct {
		Message       CommitMessage
		Confidence    *int
		Iterations    int
		Reflections   []ReflectionRecord
		Verifications []VerificationRecord
		Skipped       []SkippedStage
		Performance   PerformanceMetrics
	}
)
