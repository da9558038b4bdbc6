// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/clocked-in/internal/core"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin/world"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	World      YAMLSize          `yaml:"world"`
	Spawn      YAMLPoint         `yaml:"spawn"`
	Blocks     []YAMLBlock       `yaml:"blocks"`
	Climbables []YAMLBlock       `yaml:"climbables"`
	Lasers     []YAMLLaser       `yaml:"lasers"`
	Seeds      []YAMLPoint       `yaml:"seeds"`
	Trees      []YAMLTree        `yaml:"trees"`
	Axe        YAMLPoint         `yaml:"axe"`
	Star       YAMLPoint         `yaml:"star"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents world dimensions.
type YAMLSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLPoint is a world position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLBlock is a solid or climbable rectangle, rect = [x, y, w, h].
type YAMLBlock struct {
	Rect      []float64 `yaml:"rect"`
	Sprite    string    `yaml:"sprite"`
	Timelines []string  `yaml:"timelines"`
	Unlock    bool      `yaml:"unlock,omitempty"`
}

// YAMLLaser is a timed hazard. Durations are milliseconds.
type YAMLLaser struct {
	Rect      []float64 `yaml:"rect"`
	Axis      string    `yaml:"axis"`
	Off       int64     `yaml:"off"`
	Warning   int64     `yaml:"warning"`
	On        int64     `yaml:"on"`
	Offset    int64     `yaml:"offset"`
	Timelines []string  `yaml:"timelines"`
}

// YAMLTree is a choppable tree planted at (x, ground).
type YAMLTree struct {
	X       float64 `yaml:"x"`
	Ground  float64 `yaml:"ground"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Canopy  bool    `yaml:"canopy"`
	Special bool    `yaml:"special"`
	Sprite  string  `yaml:"sprite"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Layout   world.Layout
	Metadata map[string]string
}

// ParseYAML validates a YAML level file against the level schema and
// converts it to a world layout.
func ParseYAML(data []byte) (Level, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := ValidateDocument(doc); err != nil {
		return Level{}, err
	}

	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	layout := world.Layout{
		Name:   yl.Name,
		Width:  yl.World.W,
		Height: yl.World.H,
		Spawn:  yl.Spawn.vec(),
		Axe:    yl.Axe.vec(),
		Star:   yl.Star.vec(),
	}
	if layout.Name == "" {
		layout.Name = yl.ID
	}

	for i, b := range yl.Blocks {
		def, err := b.def()
		if err != nil {
			return Level{}, fmt.Errorf("blocks[%d]: %w", i, err)
		}
		layout.Blocks = append(layout.Blocks, def)
	}
	for i, c := range yl.Climbables {
		def, err := c.def()
		if err != nil {
			return Level{}, fmt.Errorf("climbables[%d]: %w", i, err)
		}
		layout.Climbables = append(layout.Climbables, def)
	}
	for i, l := range yl.Lasers {
		tls, err := timelineSet(l.Timelines)
		if err != nil {
			return Level{}, fmt.Errorf("lasers[%d]: %w", i, err)
		}
		layout.Lasers = append(layout.Lasers, world.LaserDef{
			Rect:      rect(l.Rect),
			Axis:      world.Axis(l.Axis),
			Off:       l.Off,
			Warning:   l.Warning,
			On:        l.On,
			Timelines: tls,
			Offset:    l.Offset,
		})
	}
	for _, s := range yl.Seeds {
		layout.Seeds = append(layout.Seeds, s.vec())
	}
	for _, t := range yl.Trees {
		layout.Trees = append(layout.Trees, world.TreeDef{
			X:       t.X,
			GroundY: t.Ground,
			Width:   t.Width,
			Height:  t.Height,
			Canopy:  t.Canopy,
			Special: t.Special,
			Sprite:  t.Sprite,
		})
	}

	if err := layout.Validate(); err != nil {
		return Level{}, err
	}

	return Level{
		ID:       yl.ID,
		Name:     layout.Name,
		Layout:   layout,
		Metadata: yl.Metadata,
	}, nil
}

func (p YAMLPoint) vec() core.Vec {
	return core.Vec{X: p.X, Y: p.Y}
}

func (b YAMLBlock) def() (world.BlockDef, error) {
	tls, err := timelineSet(b.Timelines)
	if err != nil {
		return world.BlockDef{}, err
	}
	return world.BlockDef{
		Rect:      rect(b.Rect),
		Sprite:    b.Sprite,
		Timelines: tls,
		Unlock:    b.Unlock,
	}, nil
}

// rect converts a schema-checked [x, y, w, h] list.
func rect(v []float64) core.Rect {
	if len(v) != 4 {
		return core.Rect{}
	}
	return core.NewRect(v[0], v[1], v[2], v[3])
}

func timelineSet(names []string) (world.TimelineSet, error) {
	var set world.TimelineSet
	for _, name := range names {
		tl, err := world.ParseTimeline(name)
		if err != nil {
			return 0, err
		}
		set |= world.SetOf(tl)
	}
	return set, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
