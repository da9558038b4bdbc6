package world

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clocked-in/internal/config"
	"github.com/vovakirdan/clocked-in/internal/core"
)

// Options carries the session's external collaborators. Zero values are
// replaced with a discarding logger, a silent sound sink and a wall clock.
type Options struct {
	Logger *log.Logger
	Sounds SoundSink
	Clock  Clock
}

// StepResult is returned by Step for every frame.
type StepResult struct {
	State    core.GameState
	Snapshot Snapshot
}

// Session owns all mutable game state and advances it one frame at a time.
// It is not safe for concurrent use.
type Session struct {
	layout Layout
	tuning config.Tuning
	bounds core.Rect

	log    *log.Logger
	sounds SoundSink
	clock  Clock

	reg    *Registry
	player *Player
	seeds  []*Seed
	trees  []*Tree
	axe    Axe
	star   Star
	inv    Inventory
	unlock Handle

	frame   int64
	now     int64
	camera  core.Vec
	victory bool
	quit    bool
	started bool
}

// NewSession builds the registry and entities described by layout.
// Authoring errors are reported here and never during Step.
func NewSession(layout Layout, tuning config.Tuning, opts Options) (*Session, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sounds == nil {
		opts.Sounds = NopSink{}
	}
	if opts.Clock == nil {
		opts.Clock = NewWallClock()
	}

	s := &Session{
		layout: layout,
		tuning: tuning,
		bounds: layout.Bounds(),
		log:    opts.Logger,
		sounds: opts.Sounds,
		clock:  opts.Clock,
		reg:    NewRegistry(),
		player: NewPlayer(layout.Spawn, tuning.Player.Width, tuning.Player.Height),
		unlock: NoHandle,
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	s.now = s.clock.NowMillis()
	s.updateCamera()
	return s, nil
}

func (s *Session) build() error {
	for i, b := range s.layout.Blocks {
		h, err := s.reg.Spawn(Object{Kind: KindSolid, Rect: b.Rect, Sprite: b.Sprite})
		if err != nil {
			return fmt.Errorf("world: block %d: %w", i, err)
		}
		s.addTo(h, b.Timelines)
		if b.Unlock {
			s.unlock = h
		}
	}

	for i, c := range s.layout.Climbables {
		h, err := s.reg.Spawn(Object{Kind: KindClimbable, Rect: c.Rect, Sprite: c.Sprite})
		if err != nil {
			return fmt.Errorf("world: climbable %d: %w", i, err)
		}
		s.addTo(h, c.Timelines)
	}

	origin := s.clock.NowMillis()
	for i, def := range s.layout.Lasers {
		laser, err := NewLaser(def.Rect, def.Axis, def.Off, def.Warning, def.On, def.Timelines, origin+def.Offset)
		if err != nil {
			return fmt.Errorf("world: laser %d: %w", i, err)
		}
		h, err := s.reg.Spawn(Object{Kind: KindHazard, Rect: def.Rect, Sprite: "laser", Laser: laser})
		if err != nil {
			return fmt.Errorf("world: laser %d: %w", i, err)
		}
		s.addTo(h, def.Timelines)
	}

	for _, p := range s.layout.Seeds {
		s.seeds = append(s.seeds, NewSeed(p.X, p.Y, s.tuning.Items.SeedSize))
	}

	for i, def := range s.layout.Trees {
		t, err := NewTree(s.reg, def)
		if err != nil {
			return fmt.Errorf("world: tree %d: %w", i, err)
		}
		t.Reconcile(s.reg)
		s.trees = append(s.trees, t)
	}

	items := s.tuning.Items
	s.axe = Axe{Rect: core.NewRect(s.layout.Axe.X, s.layout.Axe.Y, items.AxeWidth, items.AxeHeight)}
	s.star = Star{Rect: core.NewRect(s.layout.Star.X, s.layout.Star.Y, items.StarSize, items.StarSize)}
	return nil
}

func (s *Session) addTo(h Handle, set TimelineSet) {
	for _, t := range []Timeline{Present, Past} {
		if set.Has(t) {
			s.reg.Add(t, h)
		}
	}
}

// Step advances the session by one frame. Held actions drive physics;
// queued actions are consumed in order before the simulation runs.
func (s *Session) Step(in core.InputFrame) (StepResult, error) {
	if !s.started {
		s.started = true
		s.sounds.Play(SoundTheme)
	}

	if in.Queued(core.ActionQuit) {
		s.quit = true
		return s.result(), nil
	}
	if s.victory {
		return s.result(), nil
	}

	s.frame++
	s.now = s.clock.NowMillis()

	for _, a := range in.Queue {
		s.handleAction(a)
	}

	for i, seed := range s.seeds {
		grown, err := seed.Grow(s.reg, s.tuning.Items)
		if err != nil {
			return s.result(), err
		}
		if grown {
			h, _ := seed.Trunk()
			obj, _ := s.reg.Object(h)
			s.log.Info("trunk grown", "seed", i, "rect", obj.Rect)
		}
	}

	if !s.player.Dead {
		for _, h := range s.reg.ActiveHazards() {
			obj, _ := s.reg.Object(h)
			if obj.Laser.Lethal(s.now, s.reg.Timeline(), s.player.Rect) {
				s.die("laser", "rect", obj.Rect)
				break
			}
		}
	}

	if !s.star.Collected && s.player.Rect.Intersects(s.star.Rect) {
		s.star.Collected = true
		s.victory = true
		s.log.Info("victory", "frame", s.frame)
	}

	solids := s.reg.Rects(s.reg.ActiveSolids())
	climbables := s.reg.Rects(s.reg.ActiveClimbables())
	s.player.Update(in, solids, climbables, s.tuning.Physics, s.bounds)

	for _, t := range s.trees {
		t.Reconcile(s.reg)
	}

	s.updateCamera()
	return s.result(), nil
}

func (s *Session) handleAction(a core.Action) {
	switch a {
	case core.ActionSwap:
		s.swap()
	case core.ActionRespawn:
		s.respawn()
	case core.ActionPickup:
		s.pickup()
	case core.ActionUse:
		s.use()
	}
}

func (s *Session) swap() {
	if s.player.Dead {
		s.log.Debug("swap ignored", "reason", "dead")
		return
	}
	solids := s.reg.Swap()
	s.sounds.Play(SoundTeleport)
	s.log.Info("swap", "timeline", s.reg.Timeline(), "frame", s.frame)
	if s.reg.Overlaps(solids, s.player.Rect) {
		s.die("swapped into a block")
	}
}

func (s *Session) die(cause string, kv ...any) {
	s.player.Dead = true
	args := append([]any{"cause", cause, "pos", s.player.Rect}, kv...)
	s.log.Warn("player died", args...)
}

func (s *Session) respawn() {
	if !s.player.Dead {
		s.log.Debug("respawn ignored", "reason", "alive")
		return
	}
	s.player.Respawn()
	s.reg.SetTimeline(Present)
	for _, seed := range s.seeds {
		seed.Reset(s.reg)
	}
	s.inv.Clear()
	s.log.Info("respawn", "spawn", s.player.Spawn)
}

func (s *Session) pickup() {
	if s.player.Dead {
		return
	}
	tl := s.reg.Timeline()

	if !s.axe.PickedUp && tl == Present && s.player.Rect.Intersects(s.axe.Rect) {
		s.axe.PickedUp = true
		s.log.Info("axe picked")
	}

	if tl != Past {
		s.log.Debug("seed pickup ignored", "reason", "not in the past")
		return
	}
	for i, seed := range s.seeds {
		if seed.Pickable() && s.player.Rect.Intersects(seed.Rect) {
			seed.Pickup()
			s.inv.Push(i)
			s.log.Info("seed picked", "seed", i, "pos", seed.Rect)
			return
		}
	}
	s.log.Debug("seed pickup ignored", "reason", "no seed under player")
}

func (s *Session) use() {
	if s.player.Dead {
		return
	}
	tl := s.reg.Timeline()

	if s.axe.PickedUp && tl == Past {
		for i, t := range s.trees {
			if t.CanChop(s.reg, s.player.Rect, true, s.tuning.Items.ChopReach) {
				t.Chop(s.reg, s.unlock)
				s.log.Info("tree chopped", "tree", i, "special", t.Special)
			}
		}
	}

	if s.inv.Len() == 0 {
		s.log.Debug("place ignored", "reason", "inventory empty")
		return
	}
	if !s.player.OnGround {
		s.log.Debug("place ignored", "reason", "airborne")
		return
	}
	idx, _ := s.inv.Pop()
	seed := s.seeds[idx]
	seed.Place(s.player.Rect, tl, s.reg.Rects(s.reg.Solids(Past)))
	s.log.Info("seed placed", "seed", idx, "timeline", tl, "pos", seed.Rect, "grows", seed.GrownInPresent)
}

// updateCamera centres the viewport on the player, clamped to the world.
func (s *Session) updateCamera() {
	vw := s.tuning.Display.ViewportWidth
	vh := s.tuning.Display.ViewportHeight
	c := s.player.Rect.Center()
	s.camera = core.Vec{
		X: core.ClampF(c.X-vw/2, 0, math.Max(0, s.layout.Width-vw)),
		Y: core.ClampF(c.Y-vh/2, 0, math.Max(0, s.layout.Height-vh)),
	}
}

func (s *Session) result() StepResult {
	return StepResult{
		State: core.GameState{
			Dead:    s.player.Dead,
			Victory: s.victory,
			Quit:    s.quit,
		},
		Snapshot: s.Snapshot(),
	}
}

// Player returns the live player. Callers outside tests should use Snapshot.
func (s *Session) Player() *Player { return s.player }

// Registry returns the timeline registry.
func (s *Session) Registry() *Registry { return s.reg }

// Seeds returns the session's seeds in layout order.
func (s *Session) Seeds() []*Seed { return s.seeds }

// Trees returns the session's trees in layout order.
func (s *Session) Trees() []*Tree { return s.trees }

// Axe returns the axe.
func (s *Session) Axe() *Axe { return &s.axe }

// Star returns the star.
func (s *Session) Star() *Star { return &s.star }

// Inventory returns the seed inventory.
func (s *Session) Inventory() *Inventory { return &s.inv }

// Unlock returns the handle of the special unlock block, or NoHandle.
func (s *Session) Unlock() Handle { return s.unlock }

// Victory reports whether the star has been collected.
func (s *Session) Victory() bool { return s.victory }

// Timeline returns the active timeline.
func (s *Session) Timeline() Timeline { return s.reg.Timeline() }

// Frame returns the number of simulated frames.
func (s *Session) Frame() int64 { return s.frame }
