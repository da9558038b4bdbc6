// Package levels provides level loading for Clocked In.
// This package depends on world but world does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/clocked-in/internal/config"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin/levels/formats"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin/world"
)

// DefaultID is the level played when none is requested.
const DefaultID = "clocked-in"

// ErrNotFound is returned by LoadByID for an unknown level.
var ErrNotFound = errors.New("level not found")

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Layout   world.Layout
	Metadata map[string]string
	FilePath string // "builtin:<name>" for embedded levels
}

// Build returns the level's layout with laser durations scaled by the
// tuning's hazard scales.
func (l *Level) Build(tuning config.Tuning) world.Layout {
	layout := l.Layout
	layout.Lasers = make([]world.LaserDef, len(l.Layout.Lasers))
	for i, def := range l.Layout.Lasers {
		def.Warning, def.On = tuning.Hazards.ScaleDurations(def.Warning, def.On)
		if def.On < 1 {
			def.On = 1
		}
		layout.Lasers[i] = def
	}
	return layout
}

// Loader loads the embedded levels plus any level files under Root.
// An empty Root loads only the embedded levels.
type Loader struct {
	Root string

	// Skipped collects the files LoadAll could not parse.
	Skipped map[string]error
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll loads every embedded level and every level file under Root.
// Files that fail to parse are skipped and recorded in Skipped. A level
// file overrides an embedded level with the same ID. Levels are returned
// sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	l.Skipped = make(map[string]error)
	byID := make(map[string]Level)

	builtins, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}
	for _, lvl := range builtins {
		byID[lvl.ID] = lvl
	}

	if l.Root != "" {
		err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(p))) {
				return nil
			}

			level, err := l.LoadFile(p)
			if err != nil {
				l.Skipped[p] = err
				return nil
			}
			byID[level.ID] = level
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
		}
	}

	levels := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}
	return fromParsed(parsed, p), nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: %s: %w", id, ErrNotFound)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadBuiltin parses the embedded levels. They are part of the binary, so
// any error here is a build defect.
func LoadBuiltin() ([]Level, error) {
	var levels []Level
	err := fs.WalkDir(builtinFS, "builtin", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := builtinFS.ReadFile(p)
		if err != nil {
			return err
		}
		parsed, err := parseByExtension(data, path.Ext(p))
		if err != nil {
			return fmt.Errorf("levels: builtin %s: %w", p, err)
		}
		levels = append(levels, fromParsed(parsed, "builtin:"+path.Base(p)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}

func fromParsed(parsed formats.Level, p string) Level {
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Layout:   parsed.Layout,
		Metadata: parsed.Metadata,
		FilePath: p,
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
