package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Tomas-vilte/CommitSage/internal/config"
	domainerrors "github.com/Tomas-vilte/CommitSage/internal/domain/errors"
	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAIProvider struct {
	mock.Mock
}

func (m *MockAIProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAIProvider) IsAvailable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockAIProvider) GenerateCommitMessage(ctx context.Context, genCtx models.GenerationContext) (*models.CommitMessage, error) {
	args := m.Called(ctx, genCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommitMessage), args.Error(1)
}

func (m *MockAIProvider) GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts models.TextOptions) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, opts)
	return args.String(0), args.Error(1)
}

type MockGitService struct {
	mock.Mock
}

func (m *MockGitService) GetStagedChangesContext(ctx context.Context) (*models.StagedContext, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StagedContext), args.Error(1)
}

func (m *MockGitService) GetExistingScopes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGitService) HasStagedChanges(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockGitService) CreateCommit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockIssueReader struct {
	mock.Mock
}

func (m *MockIssueReader) GetIssueContext(ctx context.Context, number int) (string, error) {
	args := m.Called(ctx, number)
	return args.String(0), args.Error(1)
}

const widgetDiff = `diff --git a/src/widget.ts b/src/widget.ts
new file mode 100644
index 0000000..3b18e9a
--- /dev/null
+++ b/src/widget.ts
@@ -0,0 +1,4 @@
+export function renderWidget(props: WidgetProps): string {
+  return template(props);
+}
`

func testConfig() *config.Config {
	return &config.Config{
		Language:                "en",
		ActiveAI:                config.AIOllama,
		CommitTypes:             config.DefaultCommitTypes(),
		OllamaBaseURL:           "http://localhost:11434",
		MaxDiffChars:            24000,
		SummarizeTokenThreshold: 4000,
		MaxReflectionIterations: 2,
	}
}

func stagedWidgetContext() *models.StagedContext {
	return &models.StagedContext{
		Diff:          widgetDiff,
		Files:         []string{"src/widget.ts"},
		Branch:        "feature/widget",
		RecentCommits: []string{"feat(core): initial commit"},
	}
}

func setupMocks() (*MockGitService, *MockAIProvider) {
	mockGit := new(MockGitService)
	mockProvider := new(MockAIProvider)

	mockProvider.On("Name").Return("testai").Maybe()
	mockProvider.On("IsAvailable", mock.Anything).Return(true).Maybe()
	mockGit.On("GetStagedChangesContext", mock.Anything).Return(stagedWidgetContext(), nil).Maybe()

	return mockGit, mockProvider
}

// jsonOpts matches any GenerateText call that expects JSON back, which
// covers the reasoning, reflection and refinement stages.
var jsonOpts = mock.MatchedBy(func(opts models.TextOptions) bool {
	return opts.JSONFormat
})

const (
	reasoningJSON = `{"architecturalContext":"widget rendering layer","changeIntention":"add a rendering helper","changeNature":"feature","keySymbols":["renderWidget"],"suggestedType":"feat"}`
	acceptJSON    = `{"decision":"accept","qualityScore":9}`
	refineJSON    = `{"decision":"refine","qualityScore":5,"issues":["subject too vague"],"improvements":["name the new helper"]}`
	refinedMsg    = `{"type":"feat","scope":"widget","subject":"add renderWidget helper","confidence":88}`
)

func TestGenerationServiceExecute(t *testing.T) {
	initialMessage := func() *models.CommitMessage {
		confidence := 72
		return &models.CommitMessage{
			Type:       "feat",
			Subject:    "add widget rendering",
			Confidence: &confidence,
		}
	}

	t.Run("accept on first reflection stops the loop after one generation", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(acceptJSON, nil).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Iterations)
		require.Len(t, result.Reflections, 1)
		assert.Equal(t, models.DecisionAccept, result.Reflections[0].Decision)
		assert.Empty(t, result.Verifications)
		assert.Equal(t, "add widget rendering", result.Message.Subject)
		require.NotNil(t, result.Confidence)
		assert.Equal(t, 72, *result.Confidence)
		mockProvider.AssertExpectations(t)
	})

	t.Run("refinement loop is bounded by max iterations", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		// Reasoning, then two full reflect/refine cycles, all refusing
		// to accept. The budget of 2 must cap the loop regardless.
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(refineJSON, nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(refinedMsg, nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(refineJSON, nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(refinedMsg, nil).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Iterations)
		assert.Len(t, result.Reflections, 2)
		assert.Len(t, result.Verifications, 2)
		assert.Equal(t, "add renderWidget helper", result.Message.Subject)
		assert.Equal(t, "widget", result.Message.Scope)
		mockProvider.AssertExpectations(t)
	})

	t.Run("reasoning failure degrades to a skipped stage", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return("", errors.New("connection refused")).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(acceptJSON, nil).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "reasoning", result.Skipped[0].Stage)
		assert.Contains(t, result.Skipped[0].Reason, "connection refused")
		assert.Equal(t, "add widget rendering", result.Message.Subject)
	})

	t.Run("unparseable reflection keeps the current message and stops", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return("I think the message looks fine overall.", nil).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Iterations)
		assert.Empty(t, result.Reflections)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "reflection", result.Skipped[0].Stage)
		assert.Equal(t, "add widget rendering", result.Message.Subject)
		mockProvider.AssertExpectations(t)
	})

	t.Run("refinement failure keeps the previous message", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(refineJSON, nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return("", errors.New("model timed out")).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Iterations)
		assert.Len(t, result.Reflections, 1)
		assert.Len(t, result.Verifications, 1)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "refinement", result.Skipped[0].Stage)
		assert.Equal(t, "add widget rendering", result.Message.Subject)
	})

	t.Run("unavailable provider aborts after input validation", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockProvider := new(MockAIProvider)
		mockProvider.On("Name").Return("testai")
		mockProvider.On("IsAvailable", mock.Anything).Return(false)
		mockGit.On("GetStagedChangesContext", mock.Anything).Return(stagedWidgetContext(), nil)

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		_, err := service.Execute(context.Background(), ExecuteOptions{})

		var unavailable *domainerrors.ProviderUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "testai", unavailable.Provider)
		mockProvider.AssertNotCalled(t, "GenerateCommitMessage", mock.Anything, mock.Anything)
	})

	t.Run("git failure surfaces before any provider call", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockProvider := new(MockAIProvider)
		mockProvider.On("Name").Return("testai").Maybe()
		inputErr := domainerrors.NewInputError("no staged changes found")
		mockGit.On("GetStagedChangesContext", mock.Anything).Return(nil, inputErr)

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		_, err := service.Execute(context.Background(), ExecuteOptions{})

		var input *domainerrors.InputError
		require.ErrorAs(t, err, &input)
		mockProvider.AssertNotCalled(t, "IsAvailable", mock.Anything)
		mockProvider.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockProvider.AssertNotCalled(t, "GenerateCommitMessage", mock.Anything, mock.Anything)
	})

	t.Run("mandatory generation failure aborts the pipeline", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		genErr := domainerrors.NewGenerationError("testai", "request failed", errors.New("boom"))
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(nil, genErr).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		assert.Nil(t, result)
		var generation *domainerrors.GenerationError
		require.ErrorAs(t, err, &generation)
		assert.Equal(t, "testai", generation.Provider)
	})

	t.Run("concurrent execution is rejected", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		service.inFlight.Store(true)

		_, err := service.Execute(context.Background(), ExecuteOptions{})
		assert.ErrorIs(t, err, domainerrors.ErrGenerationInFlight)
	})

	t.Run("issue context from the branch name reaches the provider", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()
		mockIssues := new(MockIssueReader)

		staged := stagedWidgetContext()
		staged.Branch = "feature/42-widget-rendering"
		mockGit.ExpectedCalls = nil
		mockGit.On("GetStagedChangesContext", mock.Anything).Return(staged, nil)
		mockIssues.On("GetIssueContext", mock.Anything, 42).Return("#42: Render widgets server side [enhancement]", nil)

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.MatchedBy(func(genCtx models.GenerationContext) bool {
			return genCtx.IssueContext == "#42: Render widgets server side [enhancement]"
		})).Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(acceptJSON, nil).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig(), WithIssueReader(mockIssues))
		_, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		mockIssues.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("issue reader failure only records a skipped stage", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()
		mockIssues := new(MockIssueReader)

		staged := stagedWidgetContext()
		staged.Branch = "fix/17-broken-layout"
		mockGit.ExpectedCalls = nil
		mockGit.On("GetStagedChangesContext", mock.Anything).Return(staged, nil)
		mockIssues.On("GetIssueContext", mock.Anything, 17).Return("", errors.New("api rate limited"))

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(acceptJSON, nil).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig(), WithIssueReader(mockIssues))
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "issue_context", result.Skipped[0].Stage)
	})

	t.Run("allowed scopes from config win over git history", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		cfg := testConfig()
		cfg.AllowedScopes = []string{"widget", "core"}

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.MatchedBy(func(genCtx models.GenerationContext) bool {
			return len(genCtx.Scopes) == 2 && genCtx.Scopes[0] == "widget"
		})).Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(acceptJSON, nil).Once()

		service := NewGenerationService(mockGit, mockProvider, cfg)
		_, err := service.Execute(context.Background(), ExecuteOptions{IncludeScope: true, MaxReflectionIterations: 2})

		require.NoError(t, err)
		mockGit.AssertNotCalled(t, "GetExistingScopes", mock.Anything)
		mockProvider.AssertExpectations(t)
	})

	t.Run("performance metrics cover the stages that ran", func(t *testing.T) {
		mockGit, mockProvider := setupMocks()

		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(reasoningJSON, nil).Once()
		mockProvider.On("GenerateCommitMessage", mock.Anything, mock.Anything).
			Return(initialMessage(), nil).Once()
		mockProvider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, jsonOpts).
			Return(acceptJSON, nil).Once()

		service := NewGenerationService(mockGit, mockProvider, testConfig())
		result, err := service.Execute(context.Background(), ExecuteOptions{MaxReflectionIterations: 2})

		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Performance.TotalLatency, result.Performance.GenerationTime)
		assert.Greater(t, result.Performance.TotalLatency.Nanoseconds(), int64(0))
	})
}
