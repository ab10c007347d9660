package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boolshare/robdd"
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Write the current session's named roots to FILE in the core dump format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(s.roots))
		nodes := make([]robdd.Node, 0, len(s.roots))
		for name, n := range s.roots {
			names = append(names, name)
			nodes = append(nodes, n)
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := s.names.Dump(f, nodes...); err != nil {
			return err
		}
		fmt.Printf("wrote %d roots (%v) to %s\n", len(names), names, args[0])
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load FILE",
	Short: "Load a core dump file into the current session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(statePath)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		roots, err := s.names.Load(f, true)
		if err != nil {
			return err
		}
		for i, n := range roots {
			name := fmt.Sprintf("loaded%d", i)
			s.names.Manager().Ref(n)
			s.roots[name] = n
			fmt.Printf("%s = %s\n", name, n)
		}
		return saveSession(statePath, s)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(loadCmd)
}
