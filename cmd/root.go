package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/buscheck/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "buscheck",
	Short: "Electric bus circulation plan validator",
	Long: `buscheck validates an electric-bus circulation plan against a reference
timetable and a distance/travel-time table. It simulates every vehicle's
battery over its day and flags energy shortfalls, route continuity breaks,
uncovered or extra rides, and out-of-range travel times.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}
