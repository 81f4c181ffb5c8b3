package cmd

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2026-01-02T03:04+0500"
	stackDumpOnPanic bool
)

var rootCmd = &cobra.Command{
	Use: "starload",
	Long: `Starload rebuilds a dimensional music-streaming warehouse on Amazon Redshift
from line-delimited JSON datasets in S3. One batch run resets the star schema,
bulk-copies the event log and the song catalog into staging tables, then runs
five set-based transforms to populate the songplay fact table and the users,
song, artist and time dimensions.

Use "schema reset" and "run" for the batch operations, "serve" for the HTTP
API, or set SL_12FACTOR_MODE to drive everything from environment variables.`,
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if twelveFactorMode { // if we are running based on environment variables...
		if lambdaMode { // if we should handle lambda execution...
			lambda.Start(func() error { return execute12FactorMode(twelveFactorActions) })
		} else {
			if err := execute12FactorMode(twelveFactorActions); err != nil {
				// execute12FactorMode prints the error.
				os.Exit(1)
			}
		}
	} else { // else we're using CLI args and flags via Cobra...
		if err := rootCmd.Execute(); err != nil {
			// Execute() prints the error.
			os.Exit(1)
		}
	}
}
