package github

import (
	"context"
	"log"
	"sort"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"
)

// degradedSummary is returned when a repository's listing cannot be fetched
// (private, deleted, or a network failure).
const degradedSummary = "Error accessing repo (possibly private or deleted)"

// auditConcurrency bounds the parallel audit worker pool. Audits are
// independent single round trips; result order is preserved because each
// worker writes only to its own record.
const auditConcurrency = 4

var readmeNames = []string{"readme.md", "readme.rst", "readme", "readme.txt"}

var requirementNames = []string{
	"requirements.txt", "package.json", "pyproject.toml", "gemfile",
	"pom.xml", "go.mod", "cargo.toml", "build.gradle", "environment.yml",
}

var codeExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".cpp", ".c", ".cs",
	".go", ".rb", ".php", ".html", ".css", ".swift", ".kt", ".rs",
	".dart", ".scala", ".sh", ".bat",
}

// contentEntry is one top-level item of a repository listing.
type contentEntry struct {
	Name  string
	IsDir bool
}

// Auditor runs the file-presence quality check against matched repositories.
type Auditor struct {
	client *gh.Client
}

// NewAuditor builds an Auditor using the given access token.
func NewAuditor(token string) *Auditor {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Auditor{client: client}
}

// NewAuditorWithClient wraps an existing API client, used by tests.
func NewAuditorWithClient(client *gh.Client) *Auditor {
	return &Auditor{client: client}
}

// Audit inspects the top-level listing of owner/name. It never returns an
// error: fetch failures yield a degraded result so one broken repository
// cannot abort the audits of its siblings.
func (a *Auditor) Audit(ctx context.Context, owner, name string) *AuditResult {
	_, contents, _, err := a.client.Repositories.GetContents(ctx, owner, name, "", nil)
	if err != nil {
		return &AuditResult{Summary: degradedSummary, Err: err.Error()}
	}

	entries := make([]contentEntry, 0, len(contents))
	for _, c := range contents {
		entries = append(entries, contentEntry{Name: c.GetName(), IsDir: c.GetType() == "dir"})
	}
	return classifyContents(entries)
}

// AuditAll audits every record in repos, writing the result into each
// record. Languages are fetched alongside for the analyzer's prompt. Workers
// are bounded and input order is untouched.
func (a *Auditor) AuditAll(ctx context.Context, owner string, repos []*RepositoryRecord) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(auditConcurrency)
	for _, repo := range repos {
		g.Go(func() error {
			repo.Audit = a.Audit(ctx, owner, repo.Name)
			repo.Languages = a.languages(ctx, owner, repo.Name)
			return nil
		})
	}
	_ = g.Wait()
}

func (a *Auditor) languages(ctx context.Context, owner, name string) []string {
	byLang, _, err := a.client.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		log.Printf("github: language listing for %s/%s failed: %v", owner, name, err)
		return nil
	}
	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	// Most-used language first; ties broken alphabetically for stable prompts.
	sort.Slice(langs, func(i, j int) bool {
		if byLang[langs[i]] != byLang[langs[j]] {
			return byLang[langs[i]] > byLang[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}

// classifyContents decides the three audit flags from a top-level listing
// and renders the summary. Missing categories are always reported in the
// fixed order Code Files, README, Requirements File.
func classifyContents(entries []contentEntry) *AuditResult {
	result := &AuditResult{}

	for _, entry := range entries {
		name := strings.ToLower(entry.Name)
		if entry.IsDir {
			// A non-hidden directory is treated as organized source.
			if !strings.HasPrefix(name, ".") {
				result.HasCode = true
			}
			continue
		}
		if contains(readmeNames, name) {
			result.HasReadme = true
		}
		if contains(requirementNames, name) {
			result.HasRequirements = true
		}
		for _, ext := range codeExtensions {
			if strings.HasSuffix(name, ext) {
				result.HasCode = true
				break
			}
		}
	}

	var missing []string
	if !result.HasCode {
		missing = append(missing, "Code Files")
	}
	if !result.HasReadme {
		missing = append(missing, "README")
	}
	if !result.HasRequirements {
		missing = append(missing, "Requirements File")
	}

	if len(missing) == 0 {
		result.Summary = "GitHub is perfect"
	} else {
		result.Summary = "Missing: " + strings.Join(missing, ", ")
	}
	return result
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
