package cmd

import (
	"github.com/spf13/cobra"

	"github.com/playlake/starload/actions"
	"github.com/playlake/starload/constants"
)

var runCmd = &cobra.Command{
	Use:   constants.ActionFuncsCommandRun,
	Short: "Run the full batch pipeline: reset schema, load staging, transform",
	Long: `Run one full batch: reset the star schema, bulk-copy the event log and song
catalog from S3 into staging, then run the five transform steps that populate
the fact and dimension tables. The run stops at the first error and reports
the failing step. Rerun from the top after a failure; there is no checkpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runPipelineAction()
	},
}

var runCfg = actions.PipelineConfig{}

func runPipelineAction() error {
	runCfg.Connections = getConnectionLoader()
	runCfg.StackDumpOnPanic = stackDumpOnPanic
	return actions.RunPipeline(&runCfg)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().SortFlags = false
	addPipelineFlags(runCmd, &runCfg)
}

func addPipelineFlags(c *cobra.Command, cfg *actions.PipelineConfig) {
	switches.addFlag(c, &cfg.TargetConnection, "target", defaultTargetConnection(), true, "")
	switches.addFlag(c, &cfg.EventLogUri, "event-log-uri", "", true, "")
	switches.addFlag(c, &cfg.CatalogUri, "catalog-uri", "", true, "")
	switches.addFlag(c, &cfg.CatalogMappingUri, "catalog-mapping-uri", "", true, "")
	switches.addFlag(c, &cfg.IamRole, "iam-role", "", true, "")
	switches.addFlag(c, &cfg.BucketRegion, "bucket-region", "", false, "")
	switches.addFlag(c, &cfg.SkipPreflight, "skip-preflight", "false", false, "")
	switches.addFlag(c, &cfg.DryRun, "dry-run", "false", false, "")
	switches.addFlag(c, &cfg.LogLevel, "log-level", "info", false, "")
}
