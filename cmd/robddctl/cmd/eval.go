package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evalName string

var evalCmd = &cobra.Command{
	Use:   "eval EXPR",
	Short: "Build a BDD from a Boolean formula and store it under --name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		n, err := s.names.AddExpr(args[0])
		if err != nil {
			return err
		}
		if evalName == "" {
			evalName = args[0]
		}
		s.names.Manager().Ref(n)
		s.roots[evalName] = n
		fmt.Printf("%s = %s\n", evalName, n)
		return saveSession(statePath, s)
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalName, "name", "", "name to store the built BDD under (defaults to the expression text)")
	rootCmd.AddCommand(evalCmd)
}
