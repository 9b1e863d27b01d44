package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/nikogura/ats-scorer/pkg/config"
	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/nikogura/ats-scorer/pkg/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var port string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scoring HTTP API",
	Long: `Run the scoring HTTP API until interrupted.

Endpoints:
  GET  /health
  POST /api/score            {"resume": {...}, "job_description": "..."}
  POST /api/analyze-resume   {"resume_content": {...} or "<resume json>", "job_description": "..."}
  POST /api/score/batch      {"job_description": "...", "resumes": [{...}, ...]}
  POST /api/extract-job-keywords  {"job_description": "..."}
  GET  /api/lexicon/verbs

Example:
  ats-scorer serve --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&port, "port", "", "Listen port (default from config, ATS_PORT or PORT)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	if port != "" {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("env", cfg.Server.Env).Str("port", cfg.Server.Port).Msg("Starting ATS scorer API")

	err = server.New(cfg.Server, scorer.NewScorer()).Run(ctx)
	return err
}
