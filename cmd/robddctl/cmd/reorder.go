package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Run Rudell sifting over every declared variable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		if err := s.names.Manager().Reorder(); err != nil {
			return err
		}
		fmt.Println("variable order:", s.names.Manager().VarOrder())
		return saveSession(statePath, s)
	},
}

func init() { rootCmd.AddCommand(reorderCmd) }
