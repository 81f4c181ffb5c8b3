package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playlake/starload/config"
)

var configConnCmd = &cobra.Command{
	Use:   "connections",
	Short: "Configure warehouse connection details",
	Long: fmt.Sprintf(`Configure warehouse connections for use by the pipeline actions where:

- Connections are stored in file %q`, config.Connections.FullPath),
}

func init() {
	configCmd.AddCommand(configConnCmd)
	configCmd.Flags().SortFlags = false
	initConnAdd()
	initConnList()
	initConnRemove()
}
