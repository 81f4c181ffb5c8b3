package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playlake/starload/actions"
	"github.com/playlake/starload/config"
	"github.com/playlake/starload/constants"
	"github.com/playlake/starload/warehouse"
)

var configConnAddRedshiftCfg = &actions.ConnectionConfig{}
var redshiftConn = warehouse.DsnConnectionDetails{}

var configConnAddRedshiftCmd = &cobra.Command{
	Use:   "redshift",
	Short: "Add a Redshift connection",
	Long: fmt.Sprintf(`Add a Redshift connection to the config store %q
by providing a DSN of the form:

redshift://<user>:<password>@<host>:<port>/<database>

The default port is 5439 when omitted. Credentials are stored encrypted.
`,
		config.Connections.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		configConnAddRedshiftCfg.Type = constants.ConnectionTypeRedshift
		configConnAddRedshiftCfg.ConfigFile = getConnectionGetterSetter()
		configConnAddRedshiftCfg.ConnDetails = &redshiftConn
		cmd.SilenceUsage = true
		return actions.RunConnectionAdd(configConnAddRedshiftCfg)
	},
}

func initConnAddRedshift() {
	configConnAddCmd.AddCommand(configConnAddRedshiftCmd)
	configConnAddRedshiftCmd.Flags().SortFlags = false
	switches.addFlag(configConnAddRedshiftCmd, &configConnAddRedshiftCfg.LogicalName, "connection-name", "", true, "")
	switches.addFlag(configConnAddRedshiftCmd, &configConnAddRedshiftCfg.Force, "force", "", false, "")
	switches.addFlag(configConnAddRedshiftCmd, &redshiftConn.Dsn, "dsn", "", true, "")
}
