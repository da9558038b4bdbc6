package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/clocked-in/internal/core"
)

var (
	// ErrCycleLength is returned for a laser whose phases sum to zero.
	ErrCycleLength = errors.New("laser cycle length must be positive")
	// ErrNegativeDuration is returned for a laser with a negative phase duration.
	ErrNegativeDuration = errors.New("laser phase duration must not be negative")
)

// Phase is the state of a laser within its cycle.
type Phase int

const (
	PhaseOff Phase = iota
	PhaseWarning
	PhaseOn
)

// String returns the phase name used in logs and snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseOff:
		return "off"
	case PhaseWarning:
		return "warning"
	case PhaseOn:
		return "on"
	default:
		return "unknown"
	}
}

// Axis is the orientation of a laser beam. It only affects drawing.
type Axis string

const (
	AxisHorizontal Axis = "h"
	AxisVertical   Axis = "v"
)

// Laser is a cyclically timed lethal rectangle. It cycles
// Off -> Warning -> On -> Off forever; the phase is a pure function of the
// frame clock and the origin timestamp.
type Laser struct {
	Rect     core.Rect
	Axis     Axis
	Off      int64 // milliseconds
	Warning  int64
	On       int64
	ActiveIn TimelineSet
	Origin   int64 // clock value at which the cycle starts in Off
}

// NewLaser validates the durations and rectangle and returns a laser.
func NewLaser(rect core.Rect, axis Axis, off, warning, on int64, activeIn TimelineSet, origin int64) (*Laser, error) {
	if err := rect.Validate(); err != nil {
		return nil, fmt.Errorf("world: laser: %w", err)
	}
	if off < 0 || warning < 0 || on < 0 {
		return nil, fmt.Errorf("world: laser off=%d warning=%d on=%d: %w", off, warning, on, ErrNegativeDuration)
	}
	if off+warning+on <= 0 {
		return nil, fmt.Errorf("world: laser: %w", ErrCycleLength)
	}
	if axis != AxisVertical {
		axis = AxisHorizontal
	}
	return &Laser{
		Rect:     rect,
		Axis:     axis,
		Off:      off,
		Warning:  warning,
		On:       on,
		ActiveIn: activeIn,
		Origin:   origin,
	}, nil
}

// Cycle returns the full cycle length in milliseconds.
func (l *Laser) Cycle() int64 {
	return l.Off + l.Warning + l.On
}

// PhaseAt returns the phase at time now and the time spent in that phase.
// Times before the origin wrap backwards through the cycle.
func (l *Laser) PhaseAt(now int64) (Phase, int64) {
	cycle := l.Cycle()
	t := ((now-l.Origin)%cycle + cycle) % cycle

	if t < l.Off {
		return PhaseOff, t
	}
	t -= l.Off
	if t < l.Warning {
		return PhaseWarning, t
	}
	return PhaseOn, t - l.Warning
}

// Lethal reports whether the laser kills a player occupying r at time now
// while the given timeline is active. Only the On phase is lethal. The check
// is a single poll per frame, so a beam that switches on and off between
// two frames is never seen.
func (l *Laser) Lethal(now int64, tl Timeline, r core.Rect) bool {
	if !l.ActiveIn.Has(tl) {
		return false
	}
	phase, _ := l.PhaseAt(now)
	return phase == PhaseOn && r.Intersects(l.Rect)
}

// Pulse returns a drawing intensity hint in [0, 1]: a sine pulse while
// warning, full while on, zero while off.
func (l *Laser) Pulse(now int64) float64 {
	phase, elapsed := l.PhaseAt(now)
	switch phase {
	case PhaseWarning:
		warning := l.Warning
		if warning < 1 {
			warning = 1
		}
		return 0.5 + 0.5*math.Sin(float64(elapsed)/float64(warning)*2*math.Pi)
	case PhaseOn:
		return 1
	default:
		return 0
	}
}
