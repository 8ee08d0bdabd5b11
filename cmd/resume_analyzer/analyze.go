package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jayeshv/resume-analyzer/internal/analysis"
	"github.com/jayeshv/resume-analyzer/internal/config"
	"github.com/jayeshv/resume-analyzer/internal/extraction"
	"github.com/jayeshv/resume-analyzer/internal/github"
	"github.com/jayeshv/resume-analyzer/internal/matching"
)

var (
	analyzeCategory string
	analyzeRole     string
	analyzeLevel    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.pdf>",
	Short: "Analyze a resume PDF from the command line",
	Long:  `Run the full analysis pipeline against a local PDF and print the raw report.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCategory, "category", "", "Target job category")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target job role")
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "Target experience level")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()

	extractor := extraction.NewExtractor(cfg.LlamaAPIKey)
	doc, err := extractor.Extract(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to extract resume: %w", err)
	}
	log.Printf("extracted %d GitHub links", len(doc.Hyperlinks))

	var matched []*github.RepositoryRecord
	username := matching.Username(doc.Hyperlinks)
	switch {
	case username == "":
		log.Printf("no GitHub username found in links, proceeding resume-only")
	case !cfg.HasGitHubToken():
		log.Printf("GITHUB_TOKEN not set, proceeding resume-only")
	default:
		log.Printf("detected GitHub username: %s", username)
		repos, err := github.NewFetcher(cfg.GitHubToken).FetchProfile(ctx, username)
		if err != nil {
			log.Printf("github fetch failed: %v", err)
		} else {
			matched = matching.Match(doc.RawText, doc.Hyperlinks, repos)
			github.NewAuditor(cfg.GitHubToken).AuditAll(ctx, username, matched)
			for _, p := range matched {
				log.Printf("matched %s (%s)", p.Name, p.MatchReason)
			}
		}
	}

	analyzer := analysis.New(ctx, cfg)
	report, err := analyzer.AnalyzeProfile(ctx, doc.RawText, matched, analysis.UserContext{
		Category: analyzeCategory,
		Role:     analyzeRole,
		Level:    analyzeLevel,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println(report)
	return nil
}
