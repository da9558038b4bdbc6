package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left (held)
	ActionRight          // D, Right arrow - move right (held)
	ActionUp             // W, Up arrow - jump / climb (held)
	ActionSwap           // S - swap timeline (edge)
	ActionRespawn        // R - respawn after death (edge)
	ActionPickup         // Q - pick up axe or seed (edge)
	ActionUse            // E - chop tree / place seed (edge)
	ActionQuit           // Esc, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionSwap:
		return "Swap"
	case ActionRespawn:
		return "Respawn"
	case ActionPickup:
		return "Pickup"
	case ActionUse:
		return "Use"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction maps a lower-case action name (as used in input scripts) to
// an Action. The second result is false for unknown names.
func ParseAction(name string) (Action, bool) {
	switch name {
	case "left":
		return ActionLeft, true
	case "right":
		return ActionRight, true
	case "up", "jump":
		return ActionUp, true
	case "swap":
		return ActionSwap, true
	case "respawn":
		return ActionRespawn, true
	case "pickup":
		return ActionPickup, true
	case "use", "place", "chop":
		return ActionUse, true
	case "quit":
		return ActionQuit, true
	default:
		return ActionNone, false
	}
}

// IsHeld reports whether the action is a continuous movement intent rather
// than an edge-triggered token.
func (a Action) IsHeld() bool {
	return a == ActionLeft || a == ActionRight || a == ActionUp
}

// InputFrame represents the input state for a single simulation tick.
// Held intents are a set sampled once per frame; discrete actions are an
// ordered queue of edge-triggered tokens consumed once by the simulation.
type InputFrame struct {
	// Held maps movement intents to whether they are currently held.
	Held map[Action]bool

	// Queue lists edge-triggered actions in the order they arrived.
	Queue []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held: make(map[Action]bool),
	}
}

// Hold marks a movement intent as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Push appends an edge-triggered action to the queue.
func (f *InputFrame) Push(a Action) {
	f.Queue = append(f.Queue, a)
}

// Set records an action in the right place: held intents go to the held
// set, everything else is queued.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if a.IsHeld() {
		f.Hold(a)
		return
	}
	f.Push(a)
}

// Has returns true if the given intent is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Queued returns true if the given action was queued this frame.
func (f InputFrame) Queued(a Action) bool {
	for _, q := range f.Queue {
		if q == a {
			return true
		}
	}
	return false
}

// Clear resets held intents and the action queue for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Held {
		delete(f.Held, k)
	}
	f.Queue = f.Queue[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Queue = append([]Action(nil), f.Queue...)
	return clone
}
