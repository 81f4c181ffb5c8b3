package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playlake/starload/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure connections and default flag values",
	Long: fmt.Sprintf(`Configure connections & default parameters where:

- Connections are stored in file %q
- Default flag values are stored in file %q
`, config.Connections.FullPath, config.Pipeline.FullPath),
}

func init() {
	rootCmd.AddCommand(configCmd)
}
