// Package extraction turns an uploaded PDF resume into plain text plus the
// set of embedded hyperlinks that point at GitHub.
package extraction

// ResumeDocument is the result of extracting one uploaded resume. It is
// created once per request and discarded when the request ends.
type ResumeDocument struct {
	// RawText is the full extracted text (markdown when LlamaParse was
	// used, plain text otherwise).
	RawText string

	// Hyperlinks are the deduplicated GitHub link-annotation URIs found in
	// the PDF, in page order.
	Hyperlinks []string
}
