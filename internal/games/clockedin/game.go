// Package clockedin adapts the timeline-swap simulation to the terminal
// platform: it owns the session, advances its frame clock and draws
// snapshots into a character screen.
package clockedin

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clocked-in/internal/config"
	"github.com/vovakirdan/clocked-in/internal/core"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin/levels"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin/world"
)

// Options carries the game's collaborators.
type Options struct {
	Logger *log.Logger
	Sounds world.SoundSink
	Debug  bool // draw the coordinates/timeline line
}

// Game implements the Clocked In game on top of a world.Session.
type Game struct {
	level  levels.Level
	tuning config.Tuning
	opts   Options

	config  core.RuntimeConfig
	clock   *world.FrameClock
	session *world.Session
	last    world.Snapshot
	state   core.GameState
}

// New creates a game for level. The session is built by Reset.
func New(level levels.Level, tuning config.Tuning, opts Options) *Game {
	return &Game{level: level, tuning: tuning, opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "clockedin"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.level.Name != "" {
		return "Clocked In: " + g.level.Name
	}
	return "Clocked In"
}

// Reset builds a fresh session. The frame clock advances by one tick
// duration per Step, so laser timing follows simulated frames rather than
// wall time.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.config = cfg
	g.clock = world.NewFrameClock(cfg.FrameMillis())

	s, err := world.NewSession(g.level.Build(g.tuning), g.tuning, world.Options{
		Logger: g.opts.Logger,
		Sounds: g.opts.Sounds,
		Clock:  g.clock,
	})
	if err != nil {
		return fmt.Errorf("clockedin: level %s: %w", g.level.ID, err)
	}
	g.session = s
	g.last = s.Snapshot()
	g.state = core.GameState{}
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) (core.GameState, error) {
	if g.session == nil {
		return core.GameState{}, fmt.Errorf("clockedin: step before reset")
	}
	g.clock.Advance()
	res, err := g.session.Step(in)
	if err != nil {
		return g.state, err
	}
	g.last = res.Snapshot
	g.state = res.State
	return g.state, nil
}

// Snapshot returns the snapshot of the last step.
func (g *Game) Snapshot() world.Snapshot {
	return g.last
}

// Session returns the underlying session.
func (g *Game) Session() *world.Session {
	return g.session
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.state
}

// Render draws the last snapshot to the screen.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.last, g.opts.Debug)
}
