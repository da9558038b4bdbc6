package world

import "github.com/vovakirdan/clocked-in/internal/core"

// Snapshot is an immutable projection of one frame for renderers.
// Slices are freshly allocated and never aliased with session state.
type Snapshot struct {
	Frame      int64
	Now        int64
	Timeline   Timeline
	Player     PlayerView
	Solids     []ObjectView
	Climbables []ObjectView
	Hazards    []HazardView
	Seeds      []SeedView
	Trees      []TreeView
	Axe        ItemView
	Star       ItemView
	Inventory  []ItemKind
	HUD        []HUDSlot
	Camera     core.Vec
	Viewport   core.Vec
	World      core.Vec

	DeathBanner bool
	Victory     bool
}

// PlayerView is the drawable player state.
type PlayerView struct {
	Rect        core.Rect
	FacingRight bool
	Dead        bool
	Climbing    bool
	OnGround    bool
}

// ObjectView is a drawable solid or climbable.
type ObjectView struct {
	Rect   core.Rect
	Sprite string
}

// HazardView is a drawable laser with its phase at Snapshot.Now.
type HazardView struct {
	Rect    core.Rect
	Axis    Axis
	Phase   Phase
	Elapsed int64
	Pulse   float64
}

// SeedView tells the renderer which seed sprite, if any, to draw.
type SeedView struct {
	Rect      core.Rect
	ShowSeed  bool
	ShowMound bool
}

// TreeView is a tree visible in the active timeline.
type TreeView struct {
	Trunk   ObjectView
	Canopy  *ObjectView
	Special bool
}

// ItemView is a single pickup or goal.
type ItemView struct {
	Rect    core.Rect
	Visible bool
}

// HUDSlot is one slot of the fixed inventory bar.
type HUDSlot struct {
	Kind   ItemKind
	Filled bool
}

// Snapshot builds the render projection of the current state.
func (s *Session) Snapshot() Snapshot {
	tl := s.reg.Timeline()
	snap := Snapshot{
		Frame:    s.frame,
		Now:      s.now,
		Timeline: tl,
		Player: PlayerView{
			Rect:        s.player.Rect,
			FacingRight: s.player.FacingRight,
			Dead:        s.player.Dead,
			Climbing:    s.player.Climbing,
			OnGround:    s.player.OnGround,
		},
		Axe:         ItemView{Rect: s.axe.Rect, Visible: s.axe.Visible(tl)},
		Star:        ItemView{Rect: s.star.Rect, Visible: !s.star.Collected},
		Camera:      s.camera,
		Viewport:    core.Vec{X: s.tuning.Display.ViewportWidth, Y: s.tuning.Display.ViewportHeight},
		World:       core.Vec{X: s.layout.Width, Y: s.layout.Height},
		DeathBanner: s.player.Dead,
		Victory:     s.victory,
	}

	treeParts := make(map[Handle]bool)
	for _, t := range s.trees {
		for _, h := range t.Parts() {
			treeParts[h] = true
		}
	}

	for _, h := range s.reg.ActiveSolids() {
		if treeParts[h] {
			continue
		}
		obj, _ := s.reg.Object(h)
		snap.Solids = append(snap.Solids, ObjectView{Rect: obj.Rect, Sprite: obj.Sprite})
	}
	for _, h := range s.reg.ActiveClimbables() {
		if treeParts[h] {
			continue
		}
		obj, _ := s.reg.Object(h)
		snap.Climbables = append(snap.Climbables, ObjectView{Rect: obj.Rect, Sprite: obj.Sprite})
	}
	for _, h := range s.reg.ActiveHazards() {
		obj, _ := s.reg.Object(h)
		phase, elapsed := obj.Laser.PhaseAt(s.now)
		snap.Hazards = append(snap.Hazards, HazardView{
			Rect:    obj.Rect,
			Axis:    obj.Laser.Axis,
			Phase:   phase,
			Elapsed: elapsed,
			Pulse:   obj.Laser.Pulse(s.now),
		})
	}

	for _, seed := range s.seeds {
		snap.Seeds = append(snap.Seeds, SeedView{
			Rect:      seed.Rect,
			ShowSeed:  seed.ShowSeed(tl),
			ShowMound: seed.ShowMound(tl),
		})
	}

	if tl == Past {
		for _, t := range s.trees {
			if !t.Alive {
				continue
			}
			trunk, _ := s.reg.Object(t.Trunk)
			view := TreeView{
				Trunk:   ObjectView{Rect: trunk.Rect, Sprite: trunk.Sprite},
				Special: t.Special,
			}
			if t.Canopy != NoHandle {
				canopy, _ := s.reg.Object(t.Canopy)
				view.Canopy = &ObjectView{Rect: canopy.Rect, Sprite: canopy.Sprite}
			}
			snap.Trees = append(snap.Trees, view)
		}
	}

	for range s.inv.Len() {
		snap.Inventory = append(snap.Inventory, ItemSeed)
	}
	if s.axe.PickedUp {
		snap.Inventory = append(snap.Inventory, ItemAxe)
	}
	for _, kind := range HUDOrder {
		filled := false
		for _, held := range snap.Inventory {
			if held == kind {
				filled = true
				break
			}
		}
		snap.HUD = append(snap.HUD, HUDSlot{Kind: kind, Filled: filled})
	}

	return snap
}
