// Package ingestion fetches job postings by URL and reduces them to plain
// text for the comparison prompt.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the HTTP request timeout for posting fetches.
const DefaultTimeout = 30 * time.Second

// userAgent identifies the service to job boards; some return empty pages
// to unidentified clients.
const userAgent = "Mozilla/5.0 (compatible; ResumeAnalyzer/1.0)"

// noiseSelectors are stripped before text extraction.
var noiseSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "iframe"}

var whitespacePattern = regexp.MustCompile(`[ \t]+`)

// Error represents a failure to ingest a job posting URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Ingester fetches and cleans remote job descriptions.
type Ingester struct {
	httpClient *http.Client
}

// NewIngester builds an Ingester with the default timeout.
func NewIngester() *Ingester {
	return &Ingester{httpClient: &http.Client{Timeout: DefaultTimeout}}
}

// FromURL fetches the posting at urlStr and returns its visible text.
func (i *Ingester) FromURL(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	text, err := ExtractText(string(body))
	if err != nil {
		return "", &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	return text, nil
}

// ExtractText reduces an HTML document to cleaned visible text.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, selector := range noiseSelectors {
		doc.Find(selector).Remove()
	}

	var lines []string
	for _, raw := range strings.Split(doc.Find("body").Text(), "\n") {
		line := whitespacePattern.ReplaceAllString(strings.TrimSpace(raw), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
