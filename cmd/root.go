package cmd

import (
	"os"

	"github.com/nikogura/ats-scorer/pkg/config"
	"github.com/nikogura/ats-scorer/pkg/logging"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "ats-scorer",
	Short: "Score resumes the way an applicant tracking system would",
	Long: `ats-scorer rates a structured resume against a job description.

Five weighted checks (contact information, quantified achievements, action verbs,
keyword match and formatting) produce a 0-100 composite score, a list of issues
and concrete suggestions for improvement.

Run it once from the command line, in bulk, as an HTTP API or as a RabbitMQ worker.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.ats-scorer/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// loadConfig loads configuration and configures logging from it.
func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return cfg, err
	}

	logging.Setup(cfg.Server.Env, getVerbose())
	return cfg, err
}
