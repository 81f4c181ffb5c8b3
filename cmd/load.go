package cmd

import (
	"github.com/spf13/cobra"

	"github.com/playlake/starload/actions"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-copy the S3 datasets into the staging tables",
	Long: `Bulk-copy the event log then the song catalog from S3 into their staging
tables using Redshift COPY. The event log uses an explicit JSONPaths mapping;
the catalog uses JSON 'auto'. Loading stops when the first COPY fails; the
second dataset is not attempted. Assumes the schema already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runLoadStagingAction()
	},
}

var loadCfg = actions.LoadStagingConfig{}

func runLoadStagingAction() error {
	loadCfg.Connections = getConnectionLoader()
	loadCfg.StackDumpOnPanic = stackDumpOnPanic
	return actions.RunLoadStaging(&loadCfg)
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().SortFlags = false
	switches.addFlag(loadCmd, &loadCfg.TargetConnection, "target", defaultTargetConnection(), true, "")
	switches.addFlag(loadCmd, &loadCfg.EventLogUri, "event-log-uri", "", true, "")
	switches.addFlag(loadCmd, &loadCfg.CatalogUri, "catalog-uri", "", true, "")
	switches.addFlag(loadCmd, &loadCfg.CatalogMappingUri, "catalog-mapping-uri", "", true, "")
	switches.addFlag(loadCmd, &loadCfg.IamRole, "iam-role", "", true, "")
	switches.addFlag(loadCmd, &loadCfg.BucketRegion, "bucket-region", "", false, "")
	switches.addFlag(loadCmd, &loadCfg.SkipPreflight, "skip-preflight", "false", false, "")
	switches.addFlag(loadCmd, &loadCfg.DryRun, "dry-run", "false", false, "")
	switches.addFlag(loadCmd, &loadCfg.LogLevel, "log-level", "info", false, "")
}
