package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// GroqModel is the fallback provider's model.
const GroqModel = "llama-3.3-70b-versatile"

// groqTimeout bounds a single completion call; long prompts on a busy
// endpoint can otherwise hang a request past the server's write deadline.
const groqTimeout = 120 * time.Second

// GroqProvider implements Provider on Groq's OpenAI-compatible chat API.
type GroqProvider struct {
	client *openai.Client
}

// NewGroq creates the fallback provider.
func NewGroq(apiKey string) (*GroqProvider, error) {
	return NewGroqWithBaseURL(apiKey, GroqBaseURL)
}

// NewGroqWithBaseURL is NewGroq with an overridable endpoint, used by tests.
func NewGroqWithBaseURL(apiKey, baseURL string) (*GroqProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: groqTimeout}
	return &GroqProvider{client: openai.NewClientWithConfig(cfg)}, nil
}

// Name implements Provider.
func (p *GroqProvider) Name() string { return "groq" }

// Generate asks Groq for a JSON object response.
func (p *GroqProvider) Generate(ctx context.Context, prompt string) (string, error) {
	// A plain 0 is dropped by the request's omitempty tag and the API
	// would fall back to its server default; the smallest nonzero float
	// serializes as 0 while still being sent.
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       GroqModel,
		Temperature: math.SmallestNonzeroFloat32,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
