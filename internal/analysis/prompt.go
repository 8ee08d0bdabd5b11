package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jayeshv/resume-analyzer/internal/github"
	"github.com/jayeshv/resume-analyzer/internal/prompts"
)

// Character budgets bounding request size. Same budgets regardless of
// provider; tokens are roughly proportional to characters here.
const (
	maxProfileResumeChars  = 15000
	maxCompareResumeChars  = 10000
	maxJobDescriptionChars = 5000
)

// UserContext is the optional caller-supplied targeting context, passed
// through into the prompt with defaults applied.
type UserContext struct {
	Category string
	Role     string
	Level    string
}

func (u UserContext) sentence() string {
	role := u.Role
	if role == "" {
		role = "Software Engineer"
	}
	level := u.Level
	if level == "" {
		level = "Mid-Level"
	}
	category := u.Category
	if category == "" {
		category = "Tech"
	}
	return fmt.Sprintf(
		"CONTEXT: The candidate is applying for a '%s' role at the '%s' level in '%s'. "+
			"Evaluate them strictly according to the expectations of this specific level and role.",
		role, level, category)
}

func buildProfilePrompt(resumeText string, projects []*github.RepositoryRecord, user UserContext) string {
	if len(projects) == 0 {
		template := prompts.MustGet("profile_resume_only.tmpl")
		return prompts.Format(template, map[string]string{
			"Context": user.sentence(),
			"Resume":  truncate(resumeText, maxProfileResumeChars),
		})
	}

	template := prompts.MustGet("profile_with_projects.tmpl")
	return prompts.Format(template, map[string]string{
		"Context":  user.sentence(),
		"Resume":   truncate(resumeText, maxProfileResumeChars),
		"Projects": projectSummaries(projects),
	})
}

func buildComparePrompt(resumeText, jobDescription string) string {
	template := prompts.MustGet("compare_to_job.tmpl")
	return prompts.Format(template, map[string]string{
		"JobDescription": truncate(jobDescription, maxJobDescriptionChars),
		"Resume":         truncate(resumeText, maxCompareResumeChars),
	})
}

// projectSummaries renders the per-project block of the with-projects
// prompt: name, description, technologies, stars, match reason, and audit
// summary.
func projectSummaries(projects []*github.RepositoryRecord) string {
	summaries := make([]string, 0, len(projects))
	for _, p := range projects {
		desc := p.Description
		if desc == "" {
			desc = "No description"
		}
		audit := "Not Audited"
		if p.Audit != nil {
			audit = p.Audit.Summary
		}
		summaries = append(summaries, fmt.Sprintf(
			"- **%s**: %s\n  Tech: %s\n  Stars: %d\n  Match Reason: %s\n  Audit: %s",
			p.Name, desc, strings.Join(p.Languages, ", "), p.Stars, p.MatchReason, audit))
	}
	return strings.Join(summaries, "\n")
}

// truncate limits s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
