package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick NAME",
	Short: "Enumerate satisfying cubes of a named BDD",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		n, ok := s.roots[args[0]]
		if !ok {
			return fmt.Errorf("no root named %q", args[0])
		}
		fmt.Print(s.names.FormatCubes(n))
		return nil
	},
}

func init() { rootCmd.AddCommand(pickCmd) }
