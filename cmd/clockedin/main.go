// clockedin is a timeline-swap platformer for the terminal.
//
// Usage:
//
//	clockedin play                 - Play the default level
//	clockedin play --level <id>    - Play a specific level
//	clockedin levels list          - List available levels
//	clockedin levels validate <f>  - Check level files against the schema
//	clockedin simulate             - Run headless with a scripted input
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Tuning YAML (physics, items, viewport)
//	--level <id>          - Level to load (default: clocked-in)
//	--levels-dir <dir>    - Extra level files
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clocked-in/internal/config"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin/levels"
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagLevel      string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clockedin",
	Short: "Clocked In - a timeline-swap platformer in your terminal",
	Long: `Clocked In is a 2D platformer played in two timelines at once.
Swap between the Past and the Present to dodge lasers, grow beanstalks
from seeds planted in the past and chop your way to the star.

Available commands:
  play      - Play a level
  levels    - List or validate level files
  simulate  - Run a level headless with scripted input

Examples:
  clockedin play
  clockedin play --difficulty easy
  clockedin levels list --levels-dir ./levels
  clockedin simulate --script walk.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", levels.DefaultID, "Level ID to load")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the run logger. Logs go to --log-file when set and to
// fallback otherwise. The returned close function is never nil.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "clockedin",
		Level:           level,
	})
	return logger.With("run", uuid.NewString()), closeFn, nil
}

// loadTuning reads the tuning file and applies --difficulty.
func loadTuning() (config.Tuning, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Tuning{}, err
	}
	tuning, err := config.Load(flagConfig)
	if err != nil {
		return config.Tuning{}, err
	}
	config.ApplyPreset(&tuning, preset)
	return tuning, nil
}

// loadLevel resolves --level against the embedded levels and --levels-dir.
func loadLevel(logger *log.Logger) (levels.Level, error) {
	loader := levels.NewLoader(flagLevelsDir)
	lvl, err := loader.LoadByID(flagLevel)
	for p, skipErr := range loader.Skipped {
		logger.Warn("level file skipped", "path", p, "err", skipErr)
	}
	if err != nil {
		return levels.Level{}, err
	}
	logger.Info("level loaded", "id", lvl.ID, "source", lvl.FilePath)
	return lvl, nil
}
