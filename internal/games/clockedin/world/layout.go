package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/clocked-in/internal/core"
)

// ErrInvalidLayout is wrapped by Layout.Validate for content errors.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the static description of a level, independent of file format.
type Layout struct {
	Name       string
	Width      float64
	Height     float64
	Spawn      core.Vec
	Blocks     []BlockDef
	Climbables []BlockDef
	Lasers     []LaserDef
	Seeds      []core.Vec
	Trees      []TreeDef
	Axe        core.Vec
	Star       core.Vec
}

// BlockDef places a solid or climbable rectangle in one or both timelines.
type BlockDef struct {
	Rect      core.Rect
	Sprite    string
	Timelines TimelineSet
	Unlock    bool // removed from the Present when the special tree is chopped
}

// LaserDef places a laser. Offset shifts its cycle origin.
type LaserDef struct {
	Rect      core.Rect
	Axis      Axis
	Off       int64
	Warning   int64
	On        int64
	Timelines TimelineSet
	Offset    int64
}

// Bounds returns the world rectangle.
func (l Layout) Bounds() core.Rect {
	return core.NewRect(0, 0, l.Width, l.Height)
}

// Validate checks authoring invariants that would otherwise surface as
// broken gameplay: positive world size, non-negative rectangles, positive
// laser cycles, at most one special tree and exactly one unlock block
// when a special tree exists.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("world: layout %q: world size %gx%g: %w", l.Name, l.Width, l.Height, ErrInvalidLayout)
	}

	for i, b := range l.Blocks {
		if err := b.Rect.Validate(); err != nil {
			return fmt.Errorf("world: layout %q: block %d: %w", l.Name, i, err)
		}
		if b.Unlock && !b.Timelines.Has(Present) {
			return fmt.Errorf("world: layout %q: unlock block %d is not in the present: %w", l.Name, i, ErrInvalidLayout)
		}
	}
	for i, c := range l.Climbables {
		if err := c.Rect.Validate(); err != nil {
			return fmt.Errorf("world: layout %q: climbable %d: %w", l.Name, i, err)
		}
		if c.Unlock {
			return fmt.Errorf("world: layout %q: climbable %d cannot be an unlock block: %w", l.Name, i, ErrInvalidLayout)
		}
	}
	for i, lz := range l.Lasers {
		if err := lz.Rect.Validate(); err != nil {
			return fmt.Errorf("world: layout %q: laser %d: %w", l.Name, i, err)
		}
		if lz.Off < 0 || lz.Warning < 0 || lz.On < 0 {
			return fmt.Errorf("world: layout %q: laser %d: %w", l.Name, i, ErrNegativeDuration)
		}
		if lz.Off+lz.Warning+lz.On <= 0 {
			return fmt.Errorf("world: layout %q: laser %d: %w", l.Name, i, ErrCycleLength)
		}
	}

	special := 0
	for i, t := range l.Trees {
		if t.Width < 0 || t.Height < 0 {
			return fmt.Errorf("world: layout %q: tree %d: %w", l.Name, i, core.ErrNegativeSize)
		}
		if t.Special {
			special++
		}
	}
	unlock := 0
	for _, b := range l.Blocks {
		if b.Unlock {
			unlock++
		}
	}
	if special > 1 {
		return fmt.Errorf("world: layout %q: %d special trees: %w", l.Name, special, ErrInvalidLayout)
	}
	if unlock > 1 || (unlock == 1 && special == 0) || (special == 1 && unlock == 0) {
		return fmt.Errorf("world: layout %q: special tree and unlock block must come as a pair: %w", l.Name, ErrInvalidLayout)
	}
	return nil
}
