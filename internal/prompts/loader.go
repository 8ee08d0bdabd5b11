// Package prompts provides the LLM prompt templates, embedded at compile
// time. Templates use {{.Key}} placeholders filled by Format.
package prompts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed *.tmpl
var promptFiles embed.FS

// Get retrieves a prompt template by filename (e.g. "compare_to_job.tmpl").
func Get(filename string) (string, error) {
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	return string(data), nil
}

// MustGet retrieves a prompt template, panicking if it is missing. Use for
// templates required at initialization time.
func MustGet(filename string) string {
	prompt, err := Get(filename)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
