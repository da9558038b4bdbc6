package world

import (
	"fmt"

	"github.com/vovakirdan/clocked-in/internal/core"
)

// Tree is a Past-only choppable tree made of a climbable trunk, an optional
// solid canopy and a thin solid support through the trunk.
type Tree struct {
	Trunk   Handle
	Canopy  Handle // NoHandle when the tree has no canopy
	Support Handle
	Alive   bool
	Special bool // chopping it also removes the Present unlock block
}

// TreeDef describes a tree planted with its base at (X, GroundY).
type TreeDef struct {
	X, GroundY    float64
	Width, Height float64
	Canopy        bool
	Special       bool
	Sprite        string
}

// NewTree spawns the tree's parts in reg. Membership in the Past
// collections is established by Reconcile.
func NewTree(reg *Registry, def TreeDef) (*Tree, error) {
	sprite := def.Sprite
	if sprite == "" {
		sprite = "treeTrunk"
	}

	trunk, err := reg.Spawn(Object{
		Kind:   KindClimbable,
		Rect:   core.NewRect(def.X, def.GroundY-def.Height, def.Width, def.Height),
		Sprite: sprite,
	})
	if err != nil {
		return nil, fmt.Errorf("world: tree trunk: %w", err)
	}

	canopy := NoHandle
	if def.Canopy {
		topW := 5.0 / 3.0 * def.Width * 2
		topH := def.Height / 2
		canopy, err = reg.Spawn(Object{
			Kind:   KindSolid,
			Rect:   core.NewRect(def.X-topW/3, def.GroundY-def.Height-topH/2, topW, topH),
			Sprite: "treeTop",
		})
		if err != nil {
			return nil, fmt.Errorf("world: tree canopy: %w", err)
		}
	}

	support, err := reg.Spawn(Object{
		Kind: KindSolid,
		Rect: core.NewRect(def.X+def.Width/2-2.5, def.GroundY-def.Height, 5, def.Height),
	})
	if err != nil {
		return nil, fmt.Errorf("world: tree support: %w", err)
	}

	return &Tree{
		Trunk:   trunk,
		Canopy:  canopy,
		Support: support,
		Alive:   true,
		Special: def.Special,
	}, nil
}

// Parts returns every handle the tree owns.
func (t *Tree) Parts() []Handle {
	parts := []Handle{t.Trunk}
	if t.Canopy != NoHandle {
		parts = append(parts, t.Canopy)
	}
	return append(parts, t.Support)
}

// ReachBox returns the trunk widened by reach, the area a player must
// overlap to chop the tree.
func (t *Tree) ReachBox(reg *Registry, reach float64) core.Rect {
	trunk, _ := reg.Object(t.Trunk)
	return trunk.Rect.Inflate(reach, 0)
}

// CanChop reports whether a player at rect holding the axe can chop the tree.
func (t *Tree) CanChop(reg *Registry, player core.Rect, hasAxe bool, reach float64) bool {
	return t.Alive && hasAxe && reg.Timeline() == Past && player.Intersects(t.ReachBox(reg, reach))
}

// Chop kills the tree and removes its parts from the Past. When the tree
// is special the unlock block is removed from the Present as well.
func (t *Tree) Chop(reg *Registry, unlock Handle) {
	t.RemoveFromWorld(reg)
	t.Alive = false
	if t.Special && unlock != NoHandle {
		reg.Remove(Present, unlock)
	}
}

// AddToWorld adds the tree's parts to the Past collections.
func (t *Tree) AddToWorld(reg *Registry) {
	for _, h := range t.Parts() {
		reg.Add(Past, h)
	}
}

// RemoveFromWorld removes the tree's parts from the Past collections.
func (t *Tree) RemoveFromWorld(reg *Registry) {
	for _, h := range t.Parts() {
		reg.Remove(Past, h)
	}
}

// Reconcile syncs the tree's collection membership with its state: alive
// trees are present while the Past is active, and every tree is evicted
// while the Present is active.
func (t *Tree) Reconcile(reg *Registry) {
	if reg.Timeline() == Past && t.Alive {
		t.AddToWorld(reg)
		return
	}
	t.RemoveFromWorld(reg)
}
