package cmd

import (
	"github.com/spf13/cobra"

	"github.com/playlake/starload/actions"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Populate the fact and dimension tables from staging",
	Long: `Run the five set-based transform steps against already-loaded staging tables:
the songplay fact table first, then the users, song, artist and time
dimensions. The time dimension reads the populated fact table, so step order
is fixed. The run stops at the first failing statement.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runTransformAction()
	},
}

var transformCfg = actions.TransformConfig{}

func runTransformAction() error {
	transformCfg.Connections = getConnectionLoader()
	transformCfg.StackDumpOnPanic = stackDumpOnPanic
	return actions.RunTransform(&transformCfg)
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().SortFlags = false
	switches.addFlag(transformCmd, &transformCfg.TargetConnection, "target", defaultTargetConnection(), true, "")
	switches.addFlag(transformCmd, &transformCfg.DryRun, "dry-run", "false", false, "")
	switches.addFlag(transformCmd, &transformCfg.LogLevel, "log-level", "info", false, "")
}
