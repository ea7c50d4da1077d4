package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/profitalyze/profit-predict/pipeline"
	_ "github.com/profitalyze/profit-predict/pipeline/estimator"
)

var (
	modelPath string // Path to the persisted pipeline artifact
	logLevel  string // Log verbosity level
)

// rootCmd loads the artifact, predicts one record and prints the result.
var rootCmd = &cobra.Command{
	Use:   "profit-predict <json>",
	Short: "Predict the profit margin of a regular product",
	Long: `Loads the fitted profit-margin pipeline, builds a one-row table from the
JSON object given as the only argument and prints the model's prediction.

The object's keys must match the features the pipeline was fitted on
(see "profit-predict schema").`,
	Example: `  profit-predict '{"unit_price": 120, "cost_price": 80, "quantity": 2, "brand": "Apple"}'`,
	// Argument checking happens after the artifact is loaded, in runPredict.
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredict(cmd.OutOrStdout(), modelPath, args)
	},
}

// setupLogging applies --log. Logs go to stderr; stdout carries only results.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
	return nil
}

// Execute runs the CLI root command and exits with a status derived from the
// failure class.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(err))
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", pipeline.DefaultArtifactPath, "Path to the fitted pipeline artifact")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Every positional argument other than "schema" is a record. cobra's
	// default help and completion commands would shadow "help" and
	// "completion" and print to stdout; --help stays available.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(schemaCmd)
}
