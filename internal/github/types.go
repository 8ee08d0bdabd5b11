// Package github fetches and audits a candidate's public repositories.
package github

import "time"

// RepositoryRecord is one public repository with the metadata the matcher
// and analyzer need. It is created by the fetcher and annotated in place by
// the matcher (MatchReason) and the auditor (Audit, Languages) during a
// single request; nothing is persisted.
type RepositoryRecord struct {
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
	Stars       int          `json:"stars"`
	PushedAt    time.Time    `json:"pushed_at"`
	Languages   []string     `json:"languages,omitempty"`
	MatchReason string       `json:"match_reason,omitempty"`
	Audit       *AuditResult `json:"audit,omitempty"`
}

// AuditResult reports the file-presence quality check for one repository.
// A degraded result (all flags false plus Err) is produced when the listing
// cannot be fetched; audits never fail a request.
type AuditResult struct {
	Summary         string `json:"summary"`
	HasReadme       bool   `json:"has_readme"`
	HasRequirements bool   `json:"has_requirements"`
	HasCode         bool   `json:"has_code"`
	Err             string `json:"error,omitempty"`
}
