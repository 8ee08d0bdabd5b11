// Package analysis builds career-feedback prompts and drives the two-tier
// LLM provider chain.
package analysis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jayeshv/resume-analyzer/internal/config"
	"github.com/jayeshv/resume-analyzer/internal/github"
	"github.com/jayeshv/resume-analyzer/internal/llm"
)

// Sentinel payloads returned without any network call when no provider key
// is configured. Fixed strings; the frontend matches on them.
const (
	NoKeysProfileSentinel = "⚠️  No API keys found. Please set GEMINI_API_KEY or GROQ_API_KEY in .env."
	NoKeysCompareSentinel = "⚠️  No API keys found."
)

// Analyzer invokes the primary provider and falls back to the secondary on
// any failure. Either provider may be nil when its key is missing.
type Analyzer struct {
	primary  llm.Provider
	fallback llm.Provider
}

// New wires providers from configuration. A provider whose key is missing
// or whose client fails to construct is skipped (the chain degrades; the
// request does not fail).
func New(ctx context.Context, cfg *config.Config) *Analyzer {
	a := &Analyzer{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("analysis: gemini client unavailable: %v", err)
		} else {
			a.primary = gemini
		}
	}
	if cfg.GroqAPIKey != "" {
		groq, err := llm.NewGroq(cfg.GroqAPIKey)
		if err != nil {
			log.Printf("analysis: groq client unavailable: %v", err)
		} else {
			a.fallback = groq
		}
	}
	return a
}

// NewWithProviders builds an Analyzer over explicit providers, used by
// tests and the CLI.
func NewWithProviders(primary, fallback llm.Provider) *Analyzer {
	return &Analyzer{primary: primary, fallback: fallback}
}

// AnalyzeProfile produces the raw career-analysis response for the resume
// and its matched, audited projects. The boundary layer parses the result.
func (a *Analyzer) AnalyzeProfile(ctx context.Context, resumeText string, projects []*github.RepositoryRecord, user UserContext) (string, error) {
	prompt := buildProfilePrompt(resumeText, projects, user)
	return a.generate(ctx, prompt, NoKeysProfileSentinel, "LLM Analysis Failed")
}

// CompareToJob produces the raw resume-vs-job-description comparison.
func (a *Analyzer) CompareToJob(ctx context.Context, resumeText, jobDescription string) (string, error) {
	prompt := buildComparePrompt(resumeText, jobDescription)
	return a.generate(ctx, prompt, NoKeysCompareSentinel, "LLM Match Failed")
}

// generate runs the fallback chain. Every outcome is a payload, never a
// fault: missing keys yield the sentinel, a primary failure falls through
// to the secondary silently, and a full chain failure becomes an error JSON
// payload the caller returns like any other response.
func (a *Analyzer) generate(ctx context.Context, prompt, sentinel, failLabel string) (string, error) {
	if a.primary == nil && a.fallback == nil {
		log.Printf("analysis: %v", &ConfigurationError{})
		return sentinel, nil
	}

	var failures []error
	for _, provider := range []llm.Provider{a.primary, a.fallback} {
		if provider == nil {
			continue
		}
		log.Printf("analysis: using %s", provider.Name())
		text, err := provider.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		perr := &ProviderError{Provider: provider.Name(), Err: err}
		log.Printf("analysis: %v, falling back", perr)
		failures = append(failures, perr)
	}

	chainErr := &AllProvidersFailedError{Errors: failures}
	log.Printf("analysis: %v", chainErr)

	last := failures[len(failures)-1]
	payload, err := json.Marshal(map[string]string{
		"error":   failLabel,
		"details": last.Error(),
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
