package world

import (
	"fmt"

	"github.com/vovakirdan/clocked-in/internal/core"
)

// Timeline is one of the two mutually exclusive world configurations.
type Timeline int

const (
	Present Timeline = iota
	Past
)

// String returns the timeline name.
func (t Timeline) String() string {
	if t == Past {
		return "past"
	}
	return "present"
}

// Other returns the opposite timeline.
func (t Timeline) Other() Timeline {
	if t == Past {
		return Present
	}
	return Past
}

// ParseTimeline maps "past" or "present" to a Timeline.
func ParseTimeline(s string) (Timeline, error) {
	switch s {
	case "past":
		return Past, nil
	case "present":
		return Present, nil
	default:
		return Present, fmt.Errorf("world: unknown timeline %q", s)
	}
}

// TimelineSet is a membership set over the two timelines.
type TimelineSet uint8

// SetOf builds a TimelineSet from its members.
func SetOf(ts ...Timeline) TimelineSet {
	var s TimelineSet
	for _, t := range ts {
		s |= 1 << uint(t)
	}
	return s
}

// Has reports whether t is a member.
func (s TimelineSet) Has(t Timeline) bool {
	return s&(1<<uint(t)) != 0
}

// Kind tags the closed set of world object variants.
type Kind int

const (
	KindSolid Kind = iota
	KindClimbable
	KindHazard
	kindCount
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindClimbable:
		return "climbable"
	case KindHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Handle identifies an object in a Registry.
type Handle int

// NoHandle marks an unset handle.
const NoHandle Handle = -1

// Object is a static world rectangle. Laser is set only for KindHazard.
type Object struct {
	Kind   Kind
	Rect   core.Rect
	Sprite string
	Laser  *Laser
}

// collection is an ordered set of handles. Add and remove are idempotent
// and keep insertion order for the remaining members.
type collection struct {
	items   []Handle
	members map[Handle]struct{}
}

func (c *collection) add(h Handle) {
	if c.members == nil {
		c.members = make(map[Handle]struct{})
	}
	if _, ok := c.members[h]; ok {
		return
	}
	c.members[h] = struct{}{}
	c.items = append(c.items, h)
}

func (c *collection) remove(h Handle) {
	if _, ok := c.members[h]; !ok {
		return
	}
	delete(c.members, h)
	for i, item := range c.items {
		if item == h {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
}

func (c *collection) contains(h Handle) bool {
	_, ok := c.members[h]
	return ok
}

func (c *collection) list() []Handle {
	return append([]Handle(nil), c.items...)
}

// Registry owns every world object and the per-timeline collections that
// reference them. Entities outside the registry (seeds, trees) hold handles
// and never own the objects' presence in a collection.
type Registry struct {
	objects  []Object
	live     []bool
	free     []Handle
	sets     [2][kindCount]collection
	timeline Timeline
}

// NewRegistry creates an empty registry with Present active.
func NewRegistry() *Registry {
	return &Registry{timeline: Present}
}

// Spawn stores an object and returns its handle. The object is not a
// member of any collection until Add is called.
func (r *Registry) Spawn(obj Object) (Handle, error) {
	if err := obj.Rect.Validate(); err != nil {
		return NoHandle, fmt.Errorf("world: spawn %s %q: %w", obj.Kind, obj.Sprite, err)
	}
	if obj.Kind < 0 || obj.Kind >= kindCount {
		return NoHandle, fmt.Errorf("world: spawn: unknown kind %d", obj.Kind)
	}
	if obj.Kind == KindHazard && obj.Laser == nil {
		return NoHandle, fmt.Errorf("world: spawn hazard %q without a laser", obj.Sprite)
	}

	if n := len(r.free); n > 0 {
		h := r.free[n-1]
		r.free = r.free[:n-1]
		r.objects[h] = obj
		r.live[h] = true
		return h, nil
	}

	r.objects = append(r.objects, obj)
	r.live = append(r.live, true)
	return Handle(len(r.objects) - 1), nil
}

// Despawn removes the object from every collection and frees its handle.
// Despawning an unknown or already freed handle is a no-op.
func (r *Registry) Despawn(h Handle) {
	if !r.valid(h) {
		return
	}
	for t := range r.sets {
		for k := range r.sets[t] {
			r.sets[t][k].remove(h)
		}
	}
	r.live[h] = false
	r.objects[h] = Object{}
	r.free = append(r.free, h)
}

func (r *Registry) valid(h Handle) bool {
	return h >= 0 && int(h) < len(r.objects) && r.live[h]
}

// Object returns the object behind a handle.
func (r *Registry) Object(h Handle) (Object, bool) {
	if !r.valid(h) {
		return Object{}, false
	}
	return r.objects[h], true
}

// Add makes h a member of its kind's collection in timeline t.
// Adding a present member or an invalid handle is a no-op.
func (r *Registry) Add(t Timeline, h Handle) {
	if !r.valid(h) {
		return
	}
	r.sets[t][r.objects[h].Kind].add(h)
}

// Remove drops h from its kind's collection in timeline t.
// Removing an absent member is a no-op.
func (r *Registry) Remove(t Timeline, h Handle) {
	if !r.valid(h) {
		return
	}
	r.sets[t][r.objects[h].Kind].remove(h)
}

// Contains reports whether h is in its kind's collection in timeline t.
func (r *Registry) Contains(t Timeline, h Handle) bool {
	if !r.valid(h) {
		return false
	}
	return r.sets[t][r.objects[h].Kind].contains(h)
}

// Timeline returns the active timeline.
func (r *Registry) Timeline() Timeline {
	return r.timeline
}

// SetTimeline forces the active timeline.
func (r *Registry) SetTimeline(t Timeline) {
	r.timeline = t
}

// Swap toggles the active timeline and returns the new active solids so
// the caller can test for an illegal overlap.
func (r *Registry) Swap() []Handle {
	r.timeline = r.timeline.Other()
	return r.ActiveSolids()
}

// Solids returns the solid handles of timeline t in insertion order.
func (r *Registry) Solids(t Timeline) []Handle {
	return r.sets[t][KindSolid].list()
}

// Climbables returns the climbable handles of timeline t.
func (r *Registry) Climbables(t Timeline) []Handle {
	return r.sets[t][KindClimbable].list()
}

// Hazards returns the hazard handles of timeline t.
func (r *Registry) Hazards(t Timeline) []Handle {
	return r.sets[t][KindHazard].list()
}

// ActiveSolids returns the solids of the active timeline.
func (r *Registry) ActiveSolids() []Handle {
	return r.Solids(r.timeline)
}

// ActiveClimbables returns the climbables of the active timeline.
func (r *Registry) ActiveClimbables() []Handle {
	return r.Climbables(r.timeline)
}

// ActiveHazards returns the hazards of the active timeline.
func (r *Registry) ActiveHazards() []Handle {
	return r.Hazards(r.timeline)
}

// Rects resolves handles to their rectangles, skipping freed handles.
func (r *Registry) Rects(hs []Handle) []core.Rect {
	rects := make([]core.Rect, 0, len(hs))
	for _, h := range hs {
		if r.valid(h) {
			rects = append(rects, r.objects[h].Rect)
		}
	}
	return rects
}

// Overlaps reports whether rect intersects any of the given objects.
func (r *Registry) Overlaps(hs []Handle, rect core.Rect) bool {
	for _, h := range hs {
		if r.valid(h) && r.objects[h].Rect.Intersects(rect) {
			return true
		}
	}
	return false
}
