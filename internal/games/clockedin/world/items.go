package world

import "github.com/vovakirdan/clocked-in/internal/core"

// ItemKind tags inventory and HUD entries.
type ItemKind string

const (
	ItemSeed   ItemKind = "seed"
	ItemAxe    ItemKind = "axe"
	ItemBucket ItemKind = "bucket"
)

// HUDOrder is the fixed slot order of the inventory bar.
var HUDOrder = []ItemKind{ItemSeed, ItemAxe, ItemBucket}

// Axe is picked up once in the Present and enables chopping.
type Axe struct {
	Rect     core.Rect
	PickedUp bool
}

// Visible reports whether the axe is drawn in timeline tl.
func (a *Axe) Visible(tl Timeline) bool {
	return !a.PickedUp && tl == Present
}

// Star ends the game when collected.
type Star struct {
	Rect      core.Rect
	Collected bool
}

// Inventory is a FIFO of held seeds, stored as indices into the session's
// seed list.
type Inventory struct {
	seeds []int
}

// Push appends a seed.
func (inv *Inventory) Push(seed int) {
	inv.seeds = append(inv.seeds, seed)
}

// Pop removes and returns the oldest seed.
func (inv *Inventory) Pop() (int, bool) {
	if len(inv.seeds) == 0 {
		return 0, false
	}
	seed := inv.seeds[0]
	inv.seeds = inv.seeds[1:]
	return seed, true
}

// Len returns the number of held seeds.
func (inv *Inventory) Len() int {
	return len(inv.seeds)
}

// Clear drops every held seed.
func (inv *Inventory) Clear() {
	inv.seeds = nil
}

// Seeds returns a copy of the held seed indices, oldest first.
func (inv *Inventory) Seeds() []int {
	return append([]int(nil), inv.seeds...)
}
