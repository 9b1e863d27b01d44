package cmd

import (
	"fmt"

	"github.com/nikogura/ats-scorer/pkg/lexicon"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbsCount bool

//nolint:gochecknoglobals // Cobra boilerplate
var verbsCmd = &cobra.Command{
	Use:   "verbs",
	Short: "List the recognized action verbs",
	Long: `List the action verbs a bullet point may open with to count as strong,
one per line in alphabetical order.`,
	Args: cobra.NoArgs,
	RunE: runVerbs,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(verbsCmd)
	verbsCmd.Flags().BoolVar(&verbsCount, "count", false, "Print only the number of verbs")
}

func runVerbs(cmd *cobra.Command, args []string) (err error) {
	verbs := lexicon.Default().ActionVerbs()

	if verbsCount {
		fmt.Println(len(verbs))
		return err
	}

	for _, verb := range verbs {
		fmt.Println(verb)
	}
	return err
}
