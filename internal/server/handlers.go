package server

import (
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/jayeshv/resume-analyzer/internal/analysis"
	"github.com/jayeshv/resume-analyzer/internal/extraction"
	"github.com/jayeshv/resume-analyzer/internal/github"
	"github.com/jayeshv/resume-analyzer/internal/llm"
	"github.com/jayeshv/resume-analyzer/internal/matching"
	"github.com/jayeshv/resume-analyzer/internal/schemas"
)

// matchRequest carries the non-file fields of /api/match.
type matchRequest struct {
	JD    string `validate:"required_without=JDURL"`
	JDURL string `validate:"omitempty,url"`
}

// handleRoot returns the liveness/info message.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Resume Analyzer API is running. POST to /analyze to parse a resume.",
	})
}

// handleAnalyze runs the full profile pipeline: extract, locate a GitHub
// username, fetch + match + audit repositories, then ask the LLM chain for
// the career report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	tmpPath, ok := s.acceptUpload(w, r)
	if !ok {
		return
	}
	defer func() { _ = os.Remove(tmpPath) }()

	ctx := r.Context()

	doc, err := s.deps.Extractor.Extract(ctx, tmpPath)
	if err != nil {
		// Proceed with an empty document; the analyzer still produces
		// resume-only guidance.
		log.Printf("analyze: extraction failed: %v", err)
		doc = &extraction.ResumeDocument{}
	}

	var matched []*github.RepositoryRecord
	username := matching.Username(doc.Hyperlinks)
	if username == "" {
		log.Printf("analyze: no GitHub username found in links, resume-only analysis")
	} else if !s.cfg.HasGitHubToken() {
		log.Printf("analyze: GITHUB_TOKEN not configured, skipping GitHub matching")
	} else {
		log.Printf("analyze: detected GitHub username %s", username)
		repos, err := s.deps.Fetcher.FetchProfile(ctx, username)
		if err != nil {
			log.Printf("analyze: %v", err)
		} else {
			matched = matching.Match(doc.RawText, doc.Hyperlinks, repos)
			s.deps.Auditor.AuditAll(ctx, username, matched)
		}
	}

	user := analysis.UserContext{
		Category: r.FormValue("job_category"),
		Role:     r.FormValue("job_role"),
		Level:    r.FormValue("experience_level"),
	}

	raw, err := s.deps.Analyzer.AnalyzeProfile(ctx, doc.RawText, matched, user)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "analysis failed: "+err.Error())
		return
	}

	s.respondAnalysis(w, raw)
}

// handleMatch compares the uploaded resume against a job description
// supplied inline or by URL.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	tmpPath, ok := s.acceptUpload(w, r)
	if !ok {
		return
	}
	defer func() { _ = os.Remove(tmpPath) }()

	ctx := r.Context()

	req := matchRequest{JD: r.FormValue("jd"), JDURL: r.FormValue("jd_url")}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "jd or a valid jd_url is required")
		return
	}

	jd := req.JD
	if jd == "" {
		fetched, err := s.deps.Ingester.FromURL(ctx, req.JDURL)
		if err != nil || strings.TrimSpace(fetched) == "" {
			log.Printf("match: job description fetch failed: %v", err)
			s.errorResponse(w, http.StatusBadRequest, "could not fetch job description from jd_url")
			return
		}
		jd = fetched
	}

	doc, err := s.deps.Extractor.Extract(ctx, tmpPath)
	if err != nil {
		log.Printf("match: extraction failed: %v", err)
		doc = &extraction.ResumeDocument{}
	}

	raw, err := s.deps.Analyzer.CompareToJob(ctx, doc.RawText, jd)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "comparison failed: "+err.Error())
		return
	}

	s.respondMatch(w, raw)
}

// acceptUpload validates the multipart upload and spools it to a temp file.
// The .pdf check happens before any parsing; the caller removes the file.
func (s *Server) acceptUpload(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return "", false
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF files are supported.")
		return "", false
	}

	tmpPath, err := spoolUpload(file)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store upload: "+err.Error())
		return "", false
	}
	return tmpPath, true
}

func spoolUpload(file multipart.File) (string, error) {
	tmp, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", err
	}
	defer func() { _ = tmp.Close() }()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// respondAnalysis parses the raw model output and responds with the parsed
// report, falling back to a raw-output envelope when parsing fails.
func (s *Server) respondAnalysis(w http.ResponseWriter, raw string) {
	parsed, ok := parseReport(raw)
	if !ok {
		log.Printf("analyze: failed to parse JSON from LLM response, returning raw output")
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"raw_output": raw,
			"error":      "Failed to parse JSON response from LLM",
		})
		return
	}
	if _, isErrPayload := parsed["error"]; !isErrPayload {
		for _, issue := range schemas.CheckAnalysisReport(parsed) {
			log.Printf("analyze: report schema deviation: %s", issue)
		}
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

func (s *Server) respondMatch(w http.ResponseWriter, raw string) {
	parsed, ok := parseReport(raw)
	if !ok {
		log.Printf("match: failed to parse JSON from LLM response, returning raw output")
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"raw":   raw,
			"error": "JSON Parse Error",
		})
		return
	}
	if _, isErrPayload := parsed["error"]; !isErrPayload {
		for _, issue := range schemas.CheckMatchReport(parsed) {
			log.Printf("match: report schema deviation: %s", issue)
		}
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

// parseReport strips markdown fences and parses the model output as a JSON
// object.
func parseReport(raw string) (map[string]any, bool) {
	clean := llm.CleanJSONBlock(raw)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}
