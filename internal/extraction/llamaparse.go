package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultLlamaParseBaseURL is the LlamaParse cloud endpoint.
const DefaultLlamaParseBaseURL = "https://api.cloud.llamaindex.ai"

const (
	llamaPollInterval = 2 * time.Second
	llamaPollTimeout  = 90 * time.Second
)

// llamaParseClient drives the LlamaParse upload/poll/result cycle. The
// service returns markdown, which preserves enough structure for name and
// description matching downstream.
type llamaParseClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newLlamaParseClient(apiKey, baseURL string) *llamaParseClient {
	if baseURL == "" {
		baseURL = DefaultLlamaParseBaseURL
	}
	return &llamaParseClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Parse uploads the PDF and polls until the parse job completes, returning
// the markdown result.
func (c *llamaParseClient) Parse(ctx context.Context, path string) (string, error) {
	jobID, err := c.upload(ctx, path)
	if err != nil {
		return "", err
	}

	if err := c.waitForJob(ctx, jobID); err != nil {
		return "", err
	}

	return c.markdownResult(ctx, jobID)
}

func (c *llamaParseClient) upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to copy upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/parsing/upload", &body, writer.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("llamaparse upload returned no job id")
	}
	return resp.ID, nil
}

func (c *llamaParseClient) waitForJob(ctx context.Context, jobID string) error {
	deadline := time.Now().Add(llamaPollTimeout)
	for {
		var status struct {
			Status string `json:"status"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/parsing/job/"+jobID, nil, "", &status); err != nil {
			return err
		}

		switch status.Status {
		case "SUCCESS":
			return nil
		case "ERROR", "CANCELED":
			return fmt.Errorf("llamaparse job %s finished with status %s", jobID, status.Status)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("llamaparse job %s timed out after %s", jobID, llamaPollTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(llamaPollInterval):
		}
	}
}

func (c *llamaParseClient) markdownResult(ctx context.Context, jobID string) (string, error) {
	var result struct {
		Markdown string `json:"markdown"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/parsing/job/"+jobID+"/result/markdown", nil, "", &result); err != nil {
		return "", err
	}
	return result.Markdown, nil
}

func (c *llamaParseClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamaparse request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read llamaparse response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("llamaparse %s %s returned status %d: %s", method, path, resp.StatusCode, payload)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to parse llamaparse response: %w", err)
	}
	return nil
}
