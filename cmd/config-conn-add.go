package cmd

import (
	"github.com/spf13/cobra"
)

var configConnAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a connection",
	Long:  `Add a logical warehouse connection for use with the pipeline actions.`,
}

func initConnAdd() {
	configConnCmd.AddCommand(configConnAddCmd)
	initConnAddRedshift()
}
