package cmd

import (
	"github.com/spf13/cobra"

	"github.com/playlake/starload/actions"
	"github.com/playlake/starload/constants"
)

var schemaCmd = &cobra.Command{
	Use:   constants.ActionFuncsCommandSchema,
	Short: "Manage the star schema in the target warehouse",
	Long:  `Manage the star schema in the target warehouse`,
}

var schemaResetCmd = &cobra.Command{
	Use:   constants.ActionFuncsSubCommandReset,
	Short: "Drop and recreate the staging, fact and dimension tables",
	Long: `Drop and recreate the two staging tables, the songplay fact table and the
users, song, artist and time dimensions. The operation is idempotent: running
it twice leaves an identical empty schema. Any data in the tables is lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runSchemaResetAction()
	},
}

var schemaResetCfg = actions.ResetSchemaConfig{}

func runSchemaResetAction() error {
	schemaResetCfg.Connections = getConnectionLoader()
	schemaResetCfg.StackDumpOnPanic = stackDumpOnPanic
	return actions.RunResetSchema(&schemaResetCfg)
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaResetCmd)
	schemaResetCmd.Flags().SortFlags = false
	switches.addFlag(schemaResetCmd, &schemaResetCfg.TargetConnection, "target", defaultTargetConnection(), true, "")
	switches.addFlag(schemaResetCmd, &schemaResetCfg.DryRun, "dry-run", "false", false, "")
	switches.addFlag(schemaResetCmd, &schemaResetCfg.LogLevel, "log-level", "info", false, "")
}

// defaultTargetConnection returns the implied connection name in 12 factor mode
// where the DSN arrives via the environment, else empty so the flag is required.
func defaultTargetConnection() string {
	if twelveFactorMode {
		return defaultConnectionNameTarget
	}
	return ""
}
