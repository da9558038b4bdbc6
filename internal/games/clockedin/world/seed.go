package world

import (
	"fmt"

	"github.com/vovakirdan/clocked-in/internal/config"
	"github.com/vovakirdan/clocked-in/internal/core"
)

// SproutSprite is the sprite name of a grown seed's climbable trunk.
const SproutSprite = "beanstalk"

// Seed is a placeable item. Planted on Past ground it grows a climbable
// trunk in the Present.
type Seed struct {
	Origin          core.Vec
	Rect            core.Rect
	PickedUp        bool
	Placed          bool
	GrownInPresent  bool
	PlacedInPresent bool

	trunk Handle
}

// NewSeed creates an unplanted seed at (x, y).
func NewSeed(x, y, size float64) *Seed {
	return &Seed{
		Origin: core.Vec{X: x, Y: y},
		Rect:   core.NewRect(x, y, size, size),
		trunk:  NoHandle,
	}
}

// Pickable reports whether the seed is lying unplanted in the world.
func (s *Seed) Pickable() bool {
	return !s.PickedUp && !s.Placed
}

// Trunk returns the handle of the grown trunk, if any.
func (s *Seed) Trunk() (Handle, bool) {
	return s.trunk, s.trunk != NoHandle
}

// Pickup takes the seed into the inventory.
func (s *Seed) Pickup() {
	s.PickedUp = true
}

// Place drops the seed at the player's feet in timeline tl. In the Past the
// seed is marked to grow when it rests on a Past solid; in the Present it
// is only marked as placed.
func (s *Seed) Place(player core.Rect, tl Timeline, pastSolids []core.Rect) {
	s.Rect.SetBottom(player.Bottom() + 1)
	s.Rect.X = player.Center().X - s.Rect.W/2
	s.Placed = true
	s.PickedUp = false

	if tl == Present {
		s.PlacedInPresent = true
		return
	}
	for _, solid := range pastSolids {
		if s.Rect.Intersects(solid) {
			s.GrownInPresent = true
			return
		}
	}
}

// Grow spawns the trunk into the Present climbables the first time it is
// called while the seed is marked to grow and the Present is active.
// It returns true only on the call that spawned the trunk.
func (s *Seed) Grow(reg *Registry, items config.Items) (bool, error) {
	if !s.GrownInPresent || reg.Timeline() != Present || s.trunk != NoHandle {
		return false, nil
	}

	rect := core.NewRect(
		s.Rect.X+s.Rect.W/2-items.TrunkWidth/2,
		s.Rect.Y-items.TrunkHeight+s.Rect.H,
		items.TrunkWidth,
		items.TrunkHeight,
	)
	h, err := reg.Spawn(Object{Kind: KindClimbable, Rect: rect, Sprite: SproutSprite})
	if err != nil {
		return false, fmt.Errorf("world: grow seed: %w", err)
	}
	reg.Add(Present, h)
	s.trunk = h
	return true, nil
}

// Reset removes any grown trunk and puts the seed back where it started.
func (s *Seed) Reset(reg *Registry) {
	if s.trunk != NoHandle {
		reg.Despawn(s.trunk)
		s.trunk = NoHandle
	}
	s.Rect.X = s.Origin.X
	s.Rect.Y = s.Origin.Y
	s.PickedUp = false
	s.Placed = false
	s.GrownInPresent = false
	s.PlacedInPresent = false
}

// ShowSeed reports whether the unplanted seed is drawn in timeline tl.
// Loose seeds only exist in the Past.
func (s *Seed) ShowSeed(tl Timeline) bool {
	return tl == Past && s.Pickable()
}

// ShowMound reports whether the planted mound is drawn in timeline tl.
func (s *Seed) ShowMound(tl Timeline) bool {
	if !s.Placed {
		return false
	}
	return (tl == Past && s.GrownInPresent) || (tl == Present && s.PlacedInPresent)
}
