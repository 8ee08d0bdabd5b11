package analysis

import (
	"fmt"
	"strings"
)

// ConfigurationError means no LLM provider key is configured. It is
// non-retryable; the analyzer short-circuits to a sentinel payload without
// touching the network.
type ConfigurationError struct{}

func (e *ConfigurationError) Error() string {
	return "no LLM API keys configured"
}

// ProviderError wraps a single provider failure. A primary-provider error
// triggers the fallback and is logged, never surfaced to the caller.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AllProvidersFailedError means every provider in the fallback chain
// failed. It is surfaced to the caller as an error JSON payload, never as an
// unhandled fault.
type AllProvidersFailedError struct {
	Errors []error
}

func (e *AllProvidersFailedError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "all LLM providers failed: " + strings.Join(msgs, "; ")
}
