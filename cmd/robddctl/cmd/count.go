package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countNvars int

var countCmd = &cobra.Command{
	Use:   "count NAME",
	Short: "Print the exact number of satisfying assignments of a named BDD",
	Long: "Print the exact number of satisfying assignments of a named BDD.\n" +
		"By default the count is scaled over every declared variable; pass\n" +
		"--nvars to scale over an explicit universe size instead (must be at\n" +
		"least the size of the BDD's own support).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		n, ok := s.roots[args[0]]
		if !ok {
			return fmt.Errorf("no root named %q", args[0])
		}
		if cmd.Flags().Changed("nvars") {
			count, err := s.names.Manager().SatcountOver(n, countNvars)
			if err != nil {
				return err
			}
			fmt.Println(count.String())
			return nil
		}
		fmt.Println(s.names.Manager().Satcount(n).String())
		return nil
	},
}

func init() {
	countCmd.Flags().IntVar(&countNvars, "nvars", 0, "count over this many variables instead of every declared variable")
	rootCmd.AddCommand(countCmd)
}
