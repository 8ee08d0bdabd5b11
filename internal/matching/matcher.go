// Package matching links resume content to a candidate's GitHub
// repositories and explains each link with a human-readable reason.
package matching

import (
	"fmt"
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/jayeshv/resume-analyzer/internal/github"
)

// Match reasons, ordered from highest to lowest confidence.
const (
	ReasonURL   = "URL Link in Resume"
	ReasonName  = "Name Mentioned in Resume"
	ReasonFuzzy = "Fuzzy Name Match"
)

// Calibrated thresholds. These came from tuning against real resumes;
// treat them as configuration, not derivable values.
const (
	// FuzzyNameThreshold is the minimum partial-ratio score for a fuzzy
	// name match.
	FuzzyNameThreshold = 90
	// DescriptionThreshold is the minimum token-set score for a
	// description match.
	DescriptionThreshold = 75
	// MinDescriptionLength gates description matching; shorter
	// descriptions are too generic to trust even at score 100.
	MinDescriptionLength = 20
)

var repoSlugPattern = regexp.MustCompile(`github\.com/[\w-]+/([\w-]+)`)

// Match decides which repositories the resume actually references. Tiers
// are evaluated in fixed priority order per repository and the first hit
// wins: embedded URL, exact name, fuzzy name, then description. Matched
// records get MatchReason set in place and are returned in fetch order;
// unmatched records are dropped.
func Match(resumeText string, hyperlinks []string, repos []*github.RepositoryRecord) []*github.RepositoryRecord {
	resumeLower := strings.ToLower(resumeText)

	slugs := make(map[string]bool)
	for _, link := range hyperlinks {
		if m := repoSlugPattern.FindStringSubmatch(link); m != nil {
			slugs[strings.ToLower(m[1])] = true
		}
	}

	var matches []*github.RepositoryRecord
	for _, repo := range repos {
		nameRaw := strings.ToLower(repo.Name)
		nameClean := strings.NewReplacer("-", " ", "_", " ").Replace(nameRaw)
		desc := strings.ToLower(repo.Description)

		reason := ""

		if slugs[nameRaw] {
			reason = ReasonURL
		}

		if reason == "" {
			if strings.Contains(resumeLower, nameClean) || strings.Contains(resumeLower, nameRaw) {
				reason = ReasonName
			} else if fuzzy.PartialRatio(nameClean, resumeLower) > FuzzyNameThreshold {
				reason = ReasonFuzzy
			}
		}

		if reason == "" && len(desc) > MinDescriptionLength {
			if score := fuzzy.TokenSetRatio(desc, resumeLower); score > DescriptionThreshold {
				reason = fmt.Sprintf("Description Match (%d%%)", score)
			}
		}

		if reason != "" {
			repo.MatchReason = reason
			matches = append(matches, repo)
		}
	}
	return matches
}
