package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nikogura/ats-scorer/pkg/lexicon"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var keywordsJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var keywordsCmd = &cobra.Command{
	Use:   "keywords <jd-file-or-url|->",
	Short: "List the keywords a job description is matched on",
	Long: `List the distinct words of four or more characters in a job description, lower-cased
and in order of first appearance. These are the keywords the keyword check looks for.

Example:
  ats-scorer keywords jd.txt
  ats-scorer keywords https://example.com/jobs/123 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runKeywords,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(keywordsCmd)
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "Print keywords as a JSON array")
}

func runKeywords(cmd *cobra.Command, args []string) (err error) {
	_, err = loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var jobDescription string
	jobDescription, err = loadJobDescription(ctx, args[0])
	if err != nil {
		return err
	}

	err = printKeywords(os.Stdout, lexicon.Default().Keywords(jobDescription), keywordsJSON)
	return err
}

func printKeywords(w io.Writer, keywords []string, asJSON bool) (err error) {
	if asJSON {
		err = json.NewEncoder(w).Encode(keywords)
		if err != nil {
			err = errors.Wrap(err, "failed to encode keywords")
		}
		return err
	}

	for _, keyword := range keywords {
		_, err = fmt.Fprintln(w, keyword)
		if err != nil {
			err = errors.Wrap(err, "failed to write keywords")
			return err
		}
	}
	return err
}
