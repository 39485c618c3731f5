package errors

import (
	"errors"
	"fmt"
)

// ErrGenerationInFlight is returned when Execute is called while a
// previous run on the same service has not finished.
var ErrGenerationInFlight = errors.New("a generation is already in progress")

// ProviderUnavailableError indicates the selected backend is
// unreachable or misconfigured. Checked before any generation call.
type ProviderUnavailableError struct {
	Provider string
	Reason   string
}

func (e *ProviderUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("provider '%s' is not available: %s", e.Provider, e.Reason)
	}
	return fmt.Sprintf("provider '%s' is not available", e.Provider)
}

// NewProviderUnavailableError creates a new provider availability error.
func NewProviderUnavailableError(provider, reason string) *ProviderUnavailableError {
	return &ProviderUnavailableError{Provider: provider, Reason: reason}
}

// GenerationError indicates a mandatory generation step returned a
// malformed or invalid response. It aborts the pipeline.
type GenerationError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed [%s]: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed [%s]: %s", e.Provider, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new generation error naming the backend.
func NewGenerationError(provider, reason string, err error) *GenerationError {
	return &GenerationError{Provider: provider, Reason: reason, Err: err}
}

// ResponseParseError indicates no valid JSON object could be extracted
// from a model response.
type ResponseParseError struct {
	Provider string
	Raw      string
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("could not parse response from '%s' as JSON", e.Provider)
}

// NewResponseParseError creates a new response parse error.
func NewResponseParseError(provider, raw string) *ResponseParseError {
	return &ResponseParseError{Provider: provider, Raw: raw}
}

// InputError indicates invalid pipeline input (empty staged diff,
// non-repository context). Surfaced before any network call.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// NewInputError creates a new input error.
func NewInputError(reason string) *InputError {
	return &InputError{Reason: reason}
}
