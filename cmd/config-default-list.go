package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playlake/starload/config"
)

var configDefaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all default flag values",
	Long: fmt.Sprintf(`List default flag values stored in config file %q
by printing them all to STDOUT`,
		config.Pipeline.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		var val string
		d, err := config.Pipeline.GetAllKeys()
		if err != nil {
			return err
		}
		for _, k := range d { // for each key...
			if err := config.Pipeline.Get(k, &val); err != nil {
				return err
			}
			fmt.Println(fmt.Sprintf("%v=%v", k, val))
		}
		return nil
	},
}

func init() {
	defaultCmd.AddCommand(configDefaultListCmd)
}
