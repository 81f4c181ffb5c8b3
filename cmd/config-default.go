package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playlake/starload/config"
)

var defaultCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Configure default flag values",
	Long: fmt.Sprintf(`Configure default values for pipeline flags where:

- Default flag values are stored in file %q
- Keys match flag names, e.g. event-log-uri, catalog-uri, iam-role, target`,
		config.Pipeline.FullPath),
}

func init() {
	configCmd.AddCommand(defaultCmd)
}
