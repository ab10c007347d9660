package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkConsistency bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print node-table and cache diagnostics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		fmt.Print(s.names.Manager().Stats())
		if checkConsistency {
			if err := s.names.Manager().AssertConsistent(); err != nil {
				return err
			}
			fmt.Println("consistency check: ok")
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&checkConsistency, "check", false, "also run AssertConsistent")
	rootCmd.AddCommand(statsCmd)
}
