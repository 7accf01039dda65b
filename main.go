package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagDebug    bool
	flagWatch    bool
	flagLogLevel string
	flagMonitor  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flipbook",
	Short: "Run the flipbook platformer",
	Long: `Run a small platformer whose character animations are chosen from
player.yaml by trigger priority and played back as flipbooks.

Controls:
  A/D, Left/Right  - Move
  Space            - Jump
  J, Left mouse    - Attack
  Esc/P            - Pause
  F3               - Toggle debug overlay`,
	Args: cobra.NoArgs,
	RunE: runGame,
}

func init() {
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "show the animation debug overlay")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload animations when files under prefabs/ change")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&flagMonitor, "monitor", "m", false, "use the first monitor instead of the primary one")
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flipbook",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	if flagMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	game, err := NewGame(Config{Debug: flagDebug, Watch: flagWatch}, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("flipbook")
	ebiten.SetTPS(tps)

	return ebiten.RunGame(game)
}
