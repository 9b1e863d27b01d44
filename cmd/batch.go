package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/ats-scorer/pkg/config"
	"github.com/nikogura/ats-scorer/pkg/report"
	"github.com/nikogura/ats-scorer/pkg/resume"
	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

//nolint:gochecknoglobals // Cobra boilerplate
var concurrency int

//nolint:gochecknoglobals // Cobra boilerplate
var batchJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var batchOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var batchCmd = &cobra.Command{
	Use:   "batch <jd-file-or-url|-> <resume.json>...",
	Short: "Score many resumes against one job description",
	Long: `Score several resumes against the same job description concurrently.

One line is printed per resume, in the order given. Resumes that cannot be read
or have the wrong shape are reported and do not stop the rest.

With --output-dir (or defaults.output_dir in the config) a full report is also
written per resume, named after the resume file.

Example:
  ats-scorer batch jd.txt candidates/*.json
  ats-scorer batch https://example.com/jobs/123 a.json b.json --concurrency 8 --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runBatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of resumes scored at once")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Print results as a JSON array")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "Write one report per resume to this directory (default from config)")
}

// batchEntry is the outcome for one resume file.
type batchEntry struct {
	File   string         `json:"file"`
	Result *scorer.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	batchID := uuid.NewString()
	log.Debug().Str("batch_id", batchID).Int("resumes", len(args)-1).Msg("Starting batch")

	var jobDescription string
	jobDescription, err = loadJobDescription(ctx, args[0])
	if err != nil {
		return err
	}

	var entries []batchEntry
	entries, err = scoreFiles(ctx, scorer.NewScorer(), jobDescription, args[1:], concurrency)
	if err != nil {
		return err
	}

	outDir := batchOutputDir
	if outDir == "" {
		outDir = cfg.Defaults.OutputDir
	}
	if outDir != "" {
		err = writeReports(entries, outDir, cfg.Defaults.Format)
		if err != nil {
			return err
		}
	}

	err = printBatch(os.Stdout, entries, batchJSON)
	if err != nil {
		return err
	}

	failed := 0
	for _, entry := range entries {
		if entry.Error != "" {
			failed++
		}
	}
	log.Debug().Str("batch_id", batchID).Int("failed", failed).Msg("Batch complete")

	if failed > 0 {
		err = errors.Errorf("%d of %d resumes could not be scored", failed, len(entries))
		return err
	}

	return err
}

// scoreFiles loads and scores resumes with at most limit in flight. Entries keep
// the order of paths; per-file failures are recorded, not returned.
func scoreFiles(ctx context.Context, s *scorer.Scorer, jobDescription string, paths []string, limit int) (entries []batchEntry, err error) {
	if limit < 1 {
		limit = 1
	}

	entries = make([]batchEntry, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() (err error) {
			err = gctx.Err()
			if err != nil {
				return err
			}

			entries[i] = scoreFile(s, jobDescription, path)
			return err
		})
	}

	err = g.Wait()
	if err != nil {
		err = errors.Wrap(err, "batch cancelled")
		return entries, err
	}

	return entries, err
}

func scoreFile(s *scorer.Scorer, jobDescription, path string) (entry batchEntry) {
	entry.File = path

	data, err := resume.Load(path)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	result, err := s.Score(data, jobDescription)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Result = &result
	return entry
}

func printBatch(w io.Writer, entries []batchEntry, asJSON bool) (err error) {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(entries)
		if err != nil {
			err = errors.Wrap(err, "failed to encode batch results")
		}
		return err
	}

	for _, entry := range entries {
		if entry.Error != "" {
			_, err = fmt.Fprintf(w, "%-40s  ERROR  %s\n", entry.File, entry.Error)
		} else {
			_, err = fmt.Fprintf(w, "%-40s  %3d/100  %s\n", entry.File, entry.Result.CompositeScore, entry.Result.Rating)
		}
		if err != nil {
			err = errors.Wrap(err, "failed to write batch results")
			return err
		}
	}

	return err
}

func writeReports(entries []batchEntry, outDir, reportFormat string) (err error) {
	for _, entry := range entries {
		if entry.Result == nil {
			continue
		}

		var content string
		content, err = report.Render(*entry.Result, reportFormat)
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(filepath.Base(entry.File), filepath.Ext(entry.File))
		err = report.Write(content, filepath.Join(outDir, base+"-ats"+report.Extension(reportFormat)))
		if err != nil {
			return err
		}
	}
	return err
}
