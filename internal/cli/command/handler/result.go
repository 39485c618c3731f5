package handler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
	"github.com/Tomas-vilte/CommitSage/internal/domain/ports"
	"github.com/Tomas-vilte/CommitSage/internal/i18n"
)

// ResultHandler renders a generation result and, unless told
// otherwise, asks for confirmation and creates the commit.
type ResultHandler struct {
	git   ports.GitService
	t     *i18n.Translations
	input io.Reader
	out   io.Writer
}

type HandleOptions struct {
	DryRun    bool
	AssumeYes bool
}

func NewResultHandler(git ports.GitService, t *i18n.Translations) *ResultHandler {
	return &ResultHandler{
		git:   git,
		t:     t,
		input: os.Stdin,
		out:   os.Stdout,
	}
}

// NewResultHandlerWithIO is the testable constructor.
func NewResultHandlerWithIO(git ports.GitService, t *i18n.Translations, input io.Reader, out io.Writer) *ResultHandler {
	return &ResultHandler{
		git:   git,
		t:     t,
		input: input,
		out:   out,
	}
}

func (h *ResultHandler) HandleResult(ctx context.Context, result *models.GenerationResult, opts HandleOptions) error {
	h.displayMessage(result)
	h.displayTrace(result)

	if opts.DryRun {
		return nil
	}

	if !opts.AssumeYes && !h.confirm() {
		fmt.Fprintln(h.out, h.t.GetMessage("operation_cancelled", 0, nil))
		return nil
	}

	if err := h.git.CreateCommit(ctx, result.Message.Format()); err != nil {
		return err
	}

	fmt.Fprintf(h.out, "✅ %s\n", h.t.GetMessage("commit_created", 0, nil))
	return nil
}

func (h *ResultHandler) displayMessage(result *models.GenerationResult) {
	fmt.Fprintf(h.out, "\n📝 %s\n", h.t.GetMessage("generated_message_header", 0, nil))
	fmt.Fprintln(h.out, "━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(h.out, result.Message.Format())
	fmt.Fprintln(h.out, "━━━━━━━━━━━━━━━━━━━━━━━")
}

func (h *ResultHandler) displayTrace(result *models.GenerationResult) {
	fmt.Fprintf(h.out, "\n🔍 %s\n", h.t.GetMessage("generation_trace_header", 0, nil))
	fmt.Fprintf(h.out, "- %s\n", h.t.GetMessage("trace_iterations", result.Iterations, map[string]interface{}{
		"Count": result.Iterations,
	}))

	if result.Confidence != nil {
		fmt.Fprintf(h.out, "- %s\n", h.t.GetMessage("trace_confidence", 0, map[string]interface{}{
			"Confidence": *result.Confidence,
		}))
	}

	for i, reflection := range result.Reflections {
		fmt.Fprintf(h.out, "- %s\n", h.t.GetMessage("trace_quality", 0, map[string]interface{}{
			"Index":    i + 1,
			"Decision": string(reflection.Decision),
			"Score":    reflection.QualityScore,
		}))
	}

	for _, verification := range result.Verifications {
		fmt.Fprintf(h.out, "- %s\n", h.t.GetMessage("trace_verification", 0, map[string]interface{}{
			"Score": verification.FactualAccuracy,
		}))
	}

	for _, skip := range result.Skipped {
		fmt.Fprintf(h.out, "- ⚠️  %s\n", h.t.GetMessage("trace_skipped_stage", 0, map[string]interface{}{
			"Stage":  skip.Stage,
			"Reason": skip.Reason,
		}))
	}

	fmt.Fprintf(h.out, "- %s\n", h.t.GetMessage("trace_total_latency", 0, map[string]interface{}{
		"Latency": result.Performance.TotalLatency.Round(time.Millisecond).String(),
	}))
}

func (h *ResultHandler) confirm() bool {
	fmt.Fprintf(h.out, "\n%s ", h.t.GetMessage("confirm_commit_prompt", 0, nil))

	scanner := bufio.NewScanner(h.input)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes" || answer == "s" || answer == "si"
}
