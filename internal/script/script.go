// Package script reads scripted input sequences used for headless runs.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/clocked-in/internal/core"
)

// ErrInvalidScript is wrapped by Parse for content errors.
var ErrInvalidScript = errors.New("invalid script")

// Script is an ordered list of input steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step holds movement intents for Frames frames. Press actions are queued
// on the first frame of the step only.
type Step struct {
	Frames int      `yaml:"frames"`
	Hold   []string `yaml:"hold"`
	Press  []string `yaml:"press"`
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML script and checks every action name.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		if st.Frames < 0 {
			return nil, fmt.Errorf("step %d: negative frames: %w", i, ErrInvalidScript)
		}
		if st.Frames == 0 {
			st.Frames = 1
		}
		for _, name := range st.Hold {
			a, ok := core.ParseAction(name)
			if !ok || !a.IsHeld() {
				return nil, fmt.Errorf("step %d: %q cannot be held: %w", i, name, ErrInvalidScript)
			}
		}
		for _, name := range st.Press {
			a, ok := core.ParseAction(name)
			if !ok || a.IsHeld() {
				return nil, fmt.Errorf("step %d: %q cannot be pressed: %w", i, name, ErrInvalidScript)
			}
		}
	}
	return &s, nil
}

// Len returns the total number of frames.
func (s *Script) Len() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Frames
	}
	return n
}

// Frames expands the script into one input frame per simulated frame.
func (s *Script) Frames() []core.InputFrame {
	frames := make([]core.InputFrame, 0, s.Len())
	for _, st := range s.Steps {
		for f := 0; f < st.Frames; f++ {
			in := core.NewInputFrame()
			for _, name := range st.Hold {
				a, _ := core.ParseAction(name)
				in.Hold(a)
			}
			if f == 0 {
				for _, name := range st.Press {
					a, _ := core.ParseAction(name)
					in.Push(a)
				}
			}
			frames = append(frames, in)
		}
	}
	return frames
}
