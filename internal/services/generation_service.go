package services

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/Tomas-vilte/CommitSage/internal/analyzer"
	"github.com/Tomas-vilte/CommitSage/internal/config"
	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/Tomas-vilte/CommitSage/internal/domain/ports"
	"github.com/Tomas-vilte/CommitSage/internal/examples"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/ai"
	"github.com/Tomas-vilte/CommitSage/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/CommitSage/internal/logger"
	"github.com/Tomas-vilte/CommitSage/internal/truncate"
)

// Stage names used in skip records and logs.
const (
	stageSummarization = "semantic_summary"
	stageReasoning     = "reasoning"
	stageIssueContext  = "issue_context"
	stageReflection    = "reflection"
	stageRefinement    = "refinement"
)

type ExecuteOptions struct {
	IncludeScope            bool
	MaxReflectionIterations int
}

// optional is the outcome of a stage the pipeline can live without.
type optional[T any] struct {
	value   T
	skipped bool
	reason  string
}

func ok[T any](value T) optional[T] {
	return optional[T]{value: value}
}

func skipped[T any](reason string) optional[T] {
	return optional[T]{skipped: true, reason: reason}
}

// GenerationService runs the full diff-to-commit pipeline: structural
// analysis, example selection, truncation, optional enrichment stages,
// then a bounded generate/reflect/refine loop.
type GenerationService struct {
	git      ports.GitService
	provider ports.AIProvider
	issues   ports.IssueReader
	analyzer *analyzer.Analyzer
	corpus   []models.CommitExample
	cfg      *config.Config

	inFlight atomic.Bool
}

func NewGenerationService(git ports.GitService, provider ports.AIProvider, cfg *config.Config, opts ...ServiceOption) *GenerationService {
	s := &GenerationService{
		git:      git,
		provider: provider,
		analyzer: analyzer.New(),
		corpus:   examples.Corpus(),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ServiceOption func(*GenerationService)

// WithIssueReader enables the optional issue-context stage.
func WithIssueReader(issues ports.IssueReader) ServiceOption {
	return func(s *GenerationService) {
		s.issues = issues
	}
}

// WithAnalyzer swaps the structural analyzer, e.g. to plug a
// syntax-aware symbol extractor.
func WithAnalyzer(a *analyzer.Analyzer) ServiceOption {
	return func(s *GenerationService) {
		s.analyzer = a
	}
}

// WithCorpus replaces the few-shot corpus. Used by tests.
func WithCorpus(corpus []models.CommitExample) ServiceOption {
	return func(s *GenerationService) {
		s.corpus = corpus
	}
}

// Execute runs the pipeline once. It either returns a complete result
// or a single error; optional stage failures never surface here, they
// are recorded in the result trace. A second call while one is in
// flight fails immediately with ErrGenerationInFlight.
func (s *GenerationService) Execute(ctx context.Context, opts ExecuteOptions) (*models.GenerationResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domainerrors.ErrGenerationInFlight
	}
	defer s.inFlight.Store(false)

	started := time.Now()

	// Input validation comes first: a missing repository or an empty
	// staging area must surface before any network-backed probe runs.
	staged, err := s.git.GetStagedChangesContext(ctx)
	if err != nil {
		return nil, err
	}

	if !s.provider.IsAvailable(ctx) {
		return nil, domainerrors.NewProviderUnavailableError(s.provider.Name(), "availability probe failed")
	}

	summary := s.analyzer.Analyze(staged.Diff, staged.Files)
	logger.Debug(ctx, "diff analyzed",
		"files", summary.FilesChanged,
		"symbols", len(summary.ModifiedSymbols),
		"complexity", summary.Complexity,
		"dominant_pattern", summary.DominantPattern())

	selected := examples.Select(summary, s.corpus, examples.DefaultK)

	diff := truncate.Truncate(staged.Diff, s.cfg.MaxDiffChars)

	genCtx := models.GenerationContext{
		Diff:          diff,
		Files:         staged.Files,
		Branch:        staged.Branch,
		RecentCommits: staged.RecentCommits,
		CommitTypes:   s.cfg.CommitTypes,
		Summary:       summary,
		Examples:      selected,
	}
	if opts.IncludeScope {
		genCtx.Scopes = s.collectScopes(ctx)
	}

	result := &models.GenerationResult{}

	if summaryText := s.summarizeIfOversized(ctx, diff, staged.Files); summaryText.skipped {
		if summaryText.reason != "" {
			result.Skipped = append(result.Skipped, models.SkippedStage{Stage: stageSummarization, Reason: summaryText.reason})
		}
	} else {
		genCtx.SemanticSummary = summaryText.value
	}

	if reasoning := s.reason(ctx, genCtx); reasoning.skipped {
		result.Skipped = append(result.Skipped, models.SkippedStage{Stage: stageReasoning, Reason: reasoning.reason})
	} else {
		genCtx.Reasoning = reasoning.value
	}

	if issueCtx := s.fetchIssueContext(ctx, staged.Branch); issueCtx.skipped {
		if issueCtx.reason != "" {
			result.Skipped = append(result.Skipped, models.SkippedStage{Stage: stageIssueContext, Reason: issueCtx.reason})
		}
	} else {
		genCtx.IssueContext = issueCtx.value
	}

	genStart := time.Now()
	message, err := s.provider.GenerateCommitMessage(ctx, genCtx)
	result.Performance.GenerationTime = time.Since(genStart)
	if err != nil {
		return nil, err
	}
	result.Iterations = 1

	s.runReflectionLoop(ctx, genCtx, opts, message, result)

	result.Message = *message
	result.Confidence = message.Confidence
	result.Performance.TotalLatency = time.Since(started)
	return result, nil
}

// runReflectionLoop mutates message in place through up to
// maxReflectionIterations refine cycles. The loop stops on an accept
// decision, on budget exhaustion, or when an optional stage degrades.
func (s *GenerationService) runReflectionLoop(ctx context.Context, genCtx models.GenerationContext, opts ExecuteOptions, message *models.CommitMessage, result *models.GenerationResult) {
	maxIterations := opts.MaxReflectionIterations
	if maxIterations < 0 {
		maxIterations = 0
	}

	for i := 0; i < maxIterations; i++ {
		reflectStart := time.Now()
		reflection, err := s.reflect(ctx, genCtx, *message)
		result.Performance.ReflectionTime += time.Since(reflectStart)
		if err != nil {
			logger.Warn(ctx, "reflection failed, keeping current message", "error", err)
			result.Skipped = append(result.Skipped, models.SkippedStage{Stage: stageReflection, Reason: err.Error()})
			return
		}
		result.Reflections = append(result.Reflections, *reflection)

		if reflection.Decision == models.DecisionAccept {
			return
		}

		verifyStart := time.Now()
		verification := verifyMessage(*message, genCtx)
		result.Verifications = append(result.Verifications, verification)
		result.Performance.VerificationTime += time.Since(verifyStart)

		refineStart := time.Now()
		refined, err := s.refine(ctx, genCtx, *message, *reflection, &verification)
		result.Performance.RefinementTime += time.Since(refineStart)
		if err != nil {
			logger.Warn(ctx, "refinement failed, keeping current message", "error", err)
			result.Skipped = append(result.Skipped, models.SkippedStage{Stage: stageRefinement, Reason: err.Error()})
			return
		}
		*message = *refined
		result.Iterations++
	}
}

func (s *GenerationService) collectScopes(ctx context.Context) []string {
	if len(s.cfg.AllowedScopes) > 0 {
		return s.cfg.AllowedScopes
	}
	scopes, err := s.git.GetExistingScopes(ctx)
	if err != nil {
		logger.Warn(ctx, "could not collect existing scopes", "error", err)
		return nil
	}
	return scopes
}

// summarizeIfOversized asks for an architectural summary when the
// (already truncated) diff is still large. A skip with empty reason
// means the stage simply was not needed.
func (s *GenerationService) summarizeIfOversized(ctx context.Context, diff string, files []string) optional[string] {
	if truncate.TokenEstimate(diff) <= s.cfg.SummarizeTokenThreshold {
		return skipped[string]("")
	}

	system, user := ai.BuildSummarizationPrompts(diff, files)
	text, err := s.provider.GenerateText(ctx, system, user, models.TextOptions{
		Temperature: 0.3,
		MaxTokens:   512,
	})
	if err != nil {
		logger.Warn(ctx, "semantic summarization failed", "error", err)
		return skipped[string](err.Error())
	}
	return ok(text)
}

func (s *GenerationService) reason(ctx context.Context, genCtx models.GenerationContext) optional[*models.ReasoningTrace] {
	system, user := ai.BuildReasoningPrompts(genCtx)
	raw, err := s.provider.GenerateText(ctx, system, user, models.TextOptions{
		Temperature: 0.1,
		MaxTokens:   1024,
		JSONFormat:  true,
	})
	if err != nil {
		logger.Warn(ctx, "reasoning stage failed", "error", err)
		return skipped[*models.ReasoningTrace](err.Error())
	}

	var trace models.ReasoningTrace
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &trace); err != nil {
		logger.Warn(ctx, "reasoning response unparseable", "error", err)
		return skipped[*models.ReasoningTrace]("unparseable reasoning response")
	}
	return ok(&trace)
}

func (s *GenerationService) fetchIssueContext(ctx context.Context, branch string) optional[string] {
	if s.issues == nil {
		return skipped[string]("")
	}
	number := github.IssueNumberFromBranch(branch)
	if number == 0 {
		return skipped[string]("")
	}

	issueCtx, err := s.issues.GetIssueContext(ctx, number)
	if err != nil {
		logger.Warn(ctx, "issue context fetch failed", "issue", number, "error", err)
		return skipped[string](err.Error())
	}
	return ok(issueCtx)
}

func (s *GenerationService) reflect(ctx context.Context, genCtx models.GenerationContext, message models.CommitMessage) (*models.ReflectionRecord, error) {
	system, user := ai.BuildReflectionPrompts(genCtx, message)
	raw, err := s.provider.GenerateText(ctx, system, user, models.TextOptions{
		Temperature: 0.1,
		MaxTokens:   1024,
		JSONFormat:  true,
	})
	if err != nil {
		return nil, err
	}

	var record models.ReflectionRecord
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &record); err != nil {
		return nil, domainerrors.NewResponseParseError(s.provider.Name(), raw)
	}
	if record.Decision != models.DecisionAccept && record.Decision != models.DecisionRefine {
		return nil, domainerrors.NewGenerationError(s.provider.Name(), "reflection decision must be accept or refine", nil)
	}
	return &record, nil
}

func (s *GenerationService) refine(ctx context.Context, genCtx models.GenerationContext, message models.CommitMessage, reflection models.ReflectionRecord, verification *models.VerificationRecord) (*models.CommitMessage, error) {
	system, user := ai.BuildRefinementPrompts(genCtx, message, reflection, verification, genCtx.CommitTypes, len(genCtx.Scopes) > 0)
	raw, err := s.provider.GenerateText(ctx, system, user, models.TextOptions{
		Temperature: 0.4,
		MaxTokens:   2048,
		JSONFormat:  true,
	})
	if err != nil {
		return nil, err
	}
	return ai.ParseCommitMessage(s.provider.Name(), raw)
}
