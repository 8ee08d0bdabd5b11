// Package config provides environment-driven configuration for the analyzer.
package config

import (
	"os"
	"strconv"
)

// Config holds every credential and knob the service reads from its
// environment. It is built once at process start and injected into each
// component; nothing else in the codebase touches os.Getenv.
type Config struct {
	// Port is the HTTP listen port for the serve command.
	Port int

	// GitHubToken is the repository access credential. When empty,
	// GitHub-based matching and auditing are disabled and analysis
	// proceeds resume-only.
	GitHubToken string

	// GeminiAPIKey is the primary LLM provider credential.
	GeminiAPIKey string

	// GroqAPIKey is the fallback LLM provider credential.
	GroqAPIKey string

	// LlamaAPIKey is the LlamaParse document-extraction credential. When
	// empty, resume text is extracted locally.
	LlamaAPIKey string
}

// Load builds a Config from the process environment.
func Load() *Config {
	port := 8000
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			port = p
		}
	}

	return &Config{
		Port:         port,
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		LlamaAPIKey:  os.Getenv("LLAMA_API_KEY"),
	}
}

// HasLLMKey reports whether at least one LLM provider is configured.
func (c *Config) HasLLMKey() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

// HasGitHubToken reports whether GitHub-based matching can run.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}
