// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jayeshv/resume-analyzer/internal/analysis"
	"github.com/jayeshv/resume-analyzer/internal/config"
	"github.com/jayeshv/resume-analyzer/internal/extraction"
	"github.com/jayeshv/resume-analyzer/internal/github"
	"github.com/jayeshv/resume-analyzer/internal/ingestion"
)

// Extractor turns an uploaded PDF into text and hyperlinks.
type Extractor interface {
	Extract(ctx context.Context, path string) (*extraction.ResumeDocument, error)
}

// ProfileFetcher lists a candidate's public repositories.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) ([]*github.RepositoryRecord, error)
}

// Auditor runs the quality check over matched repositories in place.
type Auditor interface {
	AuditAll(ctx context.Context, owner string, repos []*github.RepositoryRecord)
}

// Analyzer produces raw LLM report text.
type Analyzer interface {
	AnalyzeProfile(ctx context.Context, resumeText string, projects []*github.RepositoryRecord, user analysis.UserContext) (string, error)
	CompareToJob(ctx context.Context, resumeText, jobDescription string) (string, error)
}

// JobIngester fetches a job description by URL.
type JobIngester interface {
	FromURL(ctx context.Context, url string) (string, error)
}

// Deps are the pipeline collaborators, injected so handlers can be tested
// with doubles.
type Deps struct {
	Extractor Extractor
	Fetcher   ProfileFetcher
	Auditor   Auditor
	Analyzer  Analyzer
	Ingester  JobIngester
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	deps       Deps
	validate   *validator.Validate
}

// New creates a server with explicit dependencies.
func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		cfg:      cfg,
		deps:     deps,
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/match", s.handleMatch)
	mux.HandleFunc("GET /", s.handleRoot)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRecovery(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // analysis requests wait on several upstream calls
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// NewDefault creates a server wired to the real pipeline components.
func NewDefault(ctx context.Context, cfg *config.Config) *Server {
	return New(cfg, Deps{
		Extractor: extraction.NewExtractor(cfg.LlamaAPIKey),
		Fetcher:   github.NewFetcher(cfg.GitHubToken),
		Auditor:   github.NewAuditor(cfg.GitHubToken),
		Analyzer:  analysis.New(ctx, cfg),
		Ingester:  ingestion.NewIngester(),
	})
}

// Handler exposes the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds permissive CORS headers; the frontend is served elsewhere.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a per-request id.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		start := time.Now()
		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// withRecovery converts panics into the diagnostic 500 payload. This is an
// internal tool; returning the stack to the caller is acceptable.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
					"message":   "Internal Server Error",
					"detail":    fmt.Sprint(rec),
					"traceback": string(debug.Stack()),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
