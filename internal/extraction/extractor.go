package extraction

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// Extractor extracts text and hyperlinks from uploaded PDF resumes.
// When a LlamaParse key is configured it is preferred for text (better
// layout handling for multi-column resumes); any cloud failure degrades to
// local extraction instead of aborting the request.
type Extractor struct {
	llama *llamaParseClient
}

// NewExtractor builds an Extractor. llamaAPIKey may be empty, in which case
// text is always extracted locally.
func NewExtractor(llamaAPIKey string) *Extractor {
	return NewExtractorWithBaseURL(llamaAPIKey, DefaultLlamaParseBaseURL)
}

// NewExtractorWithBaseURL is NewExtractor with an overridable LlamaParse
// endpoint, used by tests.
func NewExtractorWithBaseURL(llamaAPIKey, llamaBaseURL string) *Extractor {
	e := &Extractor{}
	if llamaAPIKey != "" {
		e.llama = newLlamaParseClient(llamaAPIKey, llamaBaseURL)
	}
	return e
}

// Extract produces a ResumeDocument from the PDF at path. Text and link
// extraction degrade independently: a failure in one half is logged and
// leaves that half empty.
func (e *Extractor) Extract(ctx context.Context, path string) (*ResumeDocument, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("resume file not readable: %w", err)
	}

	doc := &ResumeDocument{}

	text, err := e.extractText(ctx, path)
	if err != nil {
		log.Printf("extraction: text extraction failed: %v", err)
	}
	doc.RawText = strings.TrimSpace(text)

	links, err := linkAnnotations(path)
	if err != nil {
		log.Printf("extraction: hyperlink scan failed: %v", err)
	}
	doc.Hyperlinks = links

	return doc, nil
}

func (e *Extractor) extractText(ctx context.Context, path string) (string, error) {
	if e.llama != nil {
		text, err := e.llama.Parse(ctx, path)
		if err == nil && text != "" {
			return text, nil
		}
		log.Printf("extraction: llamaparse failed, falling back to local extraction: %v", err)
	}
	return localText(path)
}
