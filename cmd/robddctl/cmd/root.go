package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	statePath string
	cfgFile   string
)

// rootCmd is the base command; every subcommand loads the session named by
// --state, applies its own effect, and saves it back, so a shell pipeline
// of robddctl invocations accumulates state the way a long-lived façade
// session would.
var rootCmd = &cobra.Command{
	Use:   "robddctl",
	Short: "Build and query shared ROBDDs from the command line",
	Long: `robddctl is a batch front end over the robdd package: each
invocation loads a session file, applies one operation against the shared
ROBDD manager it holds, and writes the session back out.`,
}

// Execute runs the root command; any error is printed and exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "robddctl:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.robddctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "robdd.session.json", "session file holding the manager's declared variables and named roots")
	rootCmd.PersistentFlags().Int("nodesize", 0, "initial node table size")
	rootCmd.PersistentFlags().Int("cacheratio", 0, "computed-cache size as a percentage of the node table")
	rootCmd.PersistentFlags().Bool("reordering", true, "enable automatic dynamic reordering")
	viper.BindPFlag("nodesize", rootCmd.PersistentFlags().Lookup("nodesize"))
	viper.BindPFlag("cacheratio", rootCmd.PersistentFlags().Lookup("cacheratio"))
	viper.BindPFlag("reordering", rootCmd.PersistentFlags().Lookup("reordering"))
}

// initConfig wires viper to read from a config file, environment variables
// (ROBDDCTL_*), and the flags bound in init, the same layered precedence
// the teacher's pkg/config.Load follows.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".robddctl")
	}
	viper.SetEnvPrefix("ROBDDCTL")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
