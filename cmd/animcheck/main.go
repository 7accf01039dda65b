// animcheck validates animation prefabs and replays trigger timelines
// through the animation controller without opening a window.
//
// Usage:
//
//	animcheck validate [file...]             - Check prefabs, sheets and hook scripts
//	animcheck simulate <timeline> [--file f] - Print the animation chosen on each tick
//
// A timeline is a comma separated list of trigger sets and tick counts, for
// example "idle:3,moving:5,moving+airborne:4".
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	logger      = log.NewWithOptions(os.Stderr, log.Options{Prefix: "animcheck"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "animcheck",
	Short:         "Validate and simulate flipbook animations",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every animation and hook")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
}
