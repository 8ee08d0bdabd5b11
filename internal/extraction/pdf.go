package extraction

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// localText extracts plain text from a PDF page by page. Pages that fail to
// decode are skipped rather than failing the whole document.
func localText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

// linkAnnotations returns the GitHub link-annotation URIs embedded in the
// PDF, deduplicated, in page order. Link annotations are the
// highest-precision signal for project matching because the candidate put
// the URL there deliberately.
func linkAnnotations(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	byPage, err := pdfapi.Annotations(f, nil, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}

	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	seen := make(map[string]bool)
	var uris []string
	for _, page := range pages {
		links, ok := byPage[page][pdfmodel.AnnLink]
		if !ok {
			continue
		}
		var pageURIs []string
		for _, renderer := range links.Map {
			link, ok := renderer.(pdfmodel.LinkAnnotation)
			if !ok || link.URI == "" {
				continue
			}
			if !strings.Contains(link.URI, "github.com") {
				continue
			}
			if !seen[link.URI] {
				seen[link.URI] = true
				pageURIs = append(pageURIs, link.URI)
			}
		}
		// Annotation maps are keyed by object number; sort for a stable result.
		sort.Strings(pageURIs)
		uris = append(uris, pageURIs...)
	}
	return uris, nil
}
