package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playlake/starload/actions"
	"github.com/playlake/starload/config"
)

var defaultRemoveCfg = actions.DefaultRemoveConfig{}

var defaultRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm", "del", "delete"},
	Short:   "Remove a default flag value",
	Long:    fmt.Sprintf("Remove a default flag value from config file %q", config.Pipeline.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultRemoveCfg.ConfigFile = config.Pipeline
		return actions.RunDefaultRemove(&defaultRemoveCfg)
	},
}

func init() {
	defaultCmd.AddCommand(defaultRemoveCmd)
	defaultRemoveCmd.Flags().StringVarP(&defaultRemoveCfg.Key, "key", "k", "", "The key to remove")
	_ = defaultRemoveCmd.MarkFlagRequired("key")
	defaultRemoveCmd.SilenceUsage = true
}
