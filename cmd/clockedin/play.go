package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clocked-in/internal/audio"
	"github.com/vovakirdan/clocked-in/internal/core"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin"
	"github.com/vovakirdan/clocked-in/internal/platform/tui"
)

var (
	flagMute  bool
	flagDebug bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long: `Start playing a level in the terminal.

Controls:
  A/Left, D/Right   - Move
  W/Up/Space        - Jump, climb vines and beanstalks
  S                 - Swap between the Past and the Present
  Q                 - Pick up the axe or a seed
  E                 - Chop a tree in front of you / plant a seed
  R                 - Respawn after dying
  Ctrl+S            - Save a text screenshot
  ?                 - Toggle full help
  Esc/Ctrl+C        - Quit

Difficulty options:
  easy   - Lasers warn longer and fire shorter
  normal - Level timings as written
  hard   - Lasers warn shorter and fire longer
  fixed  - Keep the scales from the tuning file

Examples:
  clockedin play
  clockedin play --difficulty hard
  clockedin play --level ledge --levels-dir ./levels
  clockedin play --mute --log-file clockedin.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show player coordinates and timeline")
}

func runPlay(cmd *cobra.Command, args []string) error {
	// The alt screen owns stdout, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	level, err := loadLevel(logger)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	var player *audio.Player
	if !flagMute {
		opts := audio.DefaultOptions()
		opts.Logger = logger
		player = audio.NewPlayer(opts)
		if err := player.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
		defer player.Close()
	}

	game := clockedin.New(level, tuning, clockedin.Options{
		Logger: logger,
		Sounds: audio.Sink(player, flagMute),
		Debug:  flagDebug,
	})

	return tui.Run(game, cfg, logger)
}
