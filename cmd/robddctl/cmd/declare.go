package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var declareCmd = &cobra.Command{
	Use:   "declare NAME...",
	Short: "Declare one or more Boolean variables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		if _, err := s.names.Declare(args...); err != nil {
			return err
		}
		for _, name := range args {
			idx, err := s.names.IndexOf(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> var %d\n", name, idx)
		}
		return saveSession(statePath, s)
	},
}

func init() { rootCmd.AddCommand(declareCmd) }
