package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clocked-in/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Swap       key.Binding
	Respawn    key.Binding
	Pickup     key.Binding
	Use        key.Binding
	Quit       key.Binding
	Help       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Swap, k.Pickup, k.Use, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up},
		{k.Swap, k.Pickup, k.Use, k.Respawn},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("w", "up", " ", "space"),
			key.WithHelp("w/↑/space", "jump/climb"),
		),
		Swap: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swap time"),
		),
		Respawn: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "respawn"),
		),
		Pickup: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "pick up"),
		),
		Use: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "use"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// MapKey translates a key message to a game action.
// Returns ActionNone for keys that are not game actions.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Swap):
		return core.ActionSwap
	case key.Matches(msg, k.Respawn):
		return core.ActionRespawn
	case key.Matches(msg, k.Pickup):
		return core.ActionPickup
	case key.Matches(msg, k.Use):
		return core.ActionUse
	}
	return core.ActionNone
}

// Hold windows. Terminals report key repeats but never key releases, so a
// movement key counts as held until its window passes without a repeat.
// The horizontal window covers the usual autorepeat start delay.
const (
	MoveHoldWindow = 500 * time.Millisecond
	JumpHoldWindow = 120 * time.Millisecond
)

// HeldKeys turns key press events into held intents, one frame at a time.
type HeldKeys struct {
	tick    int
	windows map[core.Action]int
	until   map[core.Action]int
}

// NewHeldKeys creates a tracker for a simulation running at tickRate.
func NewHeldKeys(tickRate int) *HeldKeys {
	return &HeldKeys{
		windows: map[core.Action]int{
			core.ActionLeft:  ticksFor(MoveHoldWindow, tickRate),
			core.ActionRight: ticksFor(MoveHoldWindow, tickRate),
			core.ActionUp:    ticksFor(JumpHoldWindow, tickRate),
		},
		until: make(map[core.Action]int),
	}
}

func ticksFor(d time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, int(d*time.Duration(tickRate)/time.Second))
}

// Press records a press of a held action. Pressing one horizontal
// direction releases the other.
func (h *HeldKeys) Press(a core.Action) {
	window, ok := h.windows[a]
	if !ok {
		return
	}
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}
	h.until[a] = h.tick + window
}

// Apply marks every action still inside its window as held in frame and
// advances the tracker by one tick.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for a, until := range h.until {
		if h.tick < until {
			frame.Hold(a)
		} else {
			delete(h.until, a)
		}
	}
	h.tick++
}

// Reset releases every action.
func (h *HeldKeys) Reset() {
	clear(h.until)
}
