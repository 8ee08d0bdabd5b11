package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jayeshv/resume-analyzer/internal/config"
	"github.com/jayeshv/resume-analyzer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the /api/analyze and /api/match endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv := server.NewDefault(context.Background(), cfg)
	return srv.Start()
}
