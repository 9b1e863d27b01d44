package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/ats-scorer/pkg/config"
	"github.com/nikogura/ats-scorer/pkg/jd"
	"github.com/nikogura/ats-scorer/pkg/report"
	"github.com/nikogura/ats-scorer/pkg/resume"
	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var format string

//nolint:gochecknoglobals // Cobra boilerplate
var outputPath string

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score <resume.json> [jd-file-or-url|-]",
	Short: "Score one resume against a job description",
	Long: `Score a structured JSON resume against a job description.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)
- "-" to read it from standard input
Without a job description the keyword check scores 0.

Example:
  ats-scorer score resume.json jd.txt
  ats-scorer score resume.json https://example.com/jobs/123 --format markdown --output report.md
  pbpaste | ats-scorer score resume.json - --format json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVarP(&format, "format", "f", "", "Report format: text, markdown or json (default from config)")
	scoreCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to this file instead of stdout")
}

func runScore(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var data resume.Data
	data, err = resume.Load(args[0])
	if err != nil {
		return err
	}

	var jobDescription string
	if len(args) > 1 {
		jobDescription, err = loadJobDescription(ctx, args[1])
		if err != nil {
			return err
		}
	}

	var result scorer.Result
	result, err = scorer.NewScorer().Score(data, jobDescription)
	if err != nil {
		err = errors.Wrap(err, "failed to score resume")
		return err
	}

	reportFormat := format
	if reportFormat == "" {
		reportFormat = cfg.Defaults.Format
	}

	var content string
	content, err = report.Render(result, reportFormat)
	if err != nil {
		return err
	}

	if outputPath == "" {
		fmt.Print(content)
		return err
	}

	err = report.Write(content, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("ATS score %d/100 written to: %s\n", result.CompositeScore, outputPath)
	return err
}

// loadJobDescription fetches a job description and logs where it came from.
func loadJobDescription(ctx context.Context, input string) (jobDescription string, err error) {
	log.Debug().Str("source", input).Msg("Loading job description")

	jobDescription, err = jd.FetchWithContext(ctx, input)
	if err != nil {
		return jobDescription, err
	}

	log.Debug().Int("characters", len(jobDescription)).Msg("Job description loaded")
	return jobDescription, err
}
