package world

import (
	"errors"
	"testing"

	"github.com/vovakirdan/clocked-in/internal/core"
)

func newTestLaser(t *testing.T, origin int64) *Laser {
	t.Helper()
	l, err := NewLaser(core.NewRect(100, 0, 20, 200), AxisVertical, 2000, 1000, 3000, SetOf(Present), origin)
	if err != nil {
		t.Fatalf("NewLaser() failed: %v", err)
	}
	return l
}

func TestLaserPhaseBoundaries(t *testing.T) {
	l := newTestLaser(t, 0)

	tests := []struct {
		now     int64
		phase   Phase
		elapsed int64
	}{
		{0, PhaseOff, 0},
		{1999, PhaseOff, 1999},
		{2000, PhaseWarning, 0},
		{2999, PhaseWarning, 999},
		{3000, PhaseOn, 0},
		{5999, PhaseOn, 2999},
		{6000, PhaseOff, 0},
		{8000, PhaseWarning, 0},
		{9000, PhaseOn, 0},
		{-1, PhaseOn, 2999},
		{-3000, PhaseOn, 0},
		{-3001, PhaseWarning, 999},
		{-6000, PhaseOff, 0},
	}

	for _, tt := range tests {
		phase, elapsed := l.PhaseAt(tt.now)
		if phase != tt.phase || elapsed != tt.elapsed {
			t.Errorf("PhaseAt(%d) = (%s, %d), want (%s, %d)", tt.now, phase, elapsed, tt.phase, tt.elapsed)
		}
	}
}

func TestLaserPhaseOrder(t *testing.T) {
	l := newTestLaser(t, 1234)

	prev, _ := l.PhaseAt(1234)
	if prev != PhaseOff {
		t.Fatalf("cycle starts in %s, want off", prev)
	}
	transitions := 0
	for now := int64(1234); now < 1234+3*l.Cycle(); now++ {
		phase, _ := l.PhaseAt(now)
		if phase == prev {
			continue
		}
		want := map[Phase]Phase{PhaseOff: PhaseWarning, PhaseWarning: PhaseOn, PhaseOn: PhaseOff}[prev]
		if phase != want {
			t.Fatalf("at %d: %s -> %s, want %s", now, prev, phase, want)
		}
		prev = phase
		transitions++
	}
	if transitions != 8 {
		t.Errorf("transitions over 3 cycles = %d, want 8", transitions)
	}
}

func TestLaserOffset(t *testing.T) {
	// Offsets shift the origin forward, so a laser with offset 3000 is in
	// its On phase at time zero.
	l := newTestLaser(t, 3000)
	if phase, _ := l.PhaseAt(0); phase != PhaseOn {
		t.Errorf("PhaseAt(0) = %s, want on", phase)
	}
}

func TestNewLaserErrors(t *testing.T) {
	r := core.NewRect(0, 0, 10, 10)

	if _, err := NewLaser(r, AxisHorizontal, 0, 0, 0, SetOf(Present), 0); !errors.Is(err, ErrCycleLength) {
		t.Errorf("zero cycle: err = %v, want ErrCycleLength", err)
	}
	if _, err := NewLaser(r, AxisHorizontal, -1, 100, 100, SetOf(Present), 0); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("negative off: err = %v, want ErrNegativeDuration", err)
	}
	if _, err := NewLaser(core.NewRect(0, 0, -5, 10), AxisHorizontal, 1, 1, 1, SetOf(Present), 0); !errors.Is(err, core.ErrNegativeSize) {
		t.Errorf("negative width: err = %v, want ErrNegativeSize", err)
	}
	if _, err := NewLaser(r, AxisHorizontal, 0, 0, 1, SetOf(Present), 0); err != nil {
		t.Errorf("always-on laser rejected: %v", err)
	}
}

func TestLaserLethal(t *testing.T) {
	l := newTestLaser(t, 0)
	inside := core.NewRect(105, 50, 10, 10)
	outside := core.NewRect(300, 50, 10, 10)

	tests := []struct {
		name string
		now  int64
		tl   Timeline
		r    core.Rect
		want bool
	}{
		{"on and overlapping", 3500, Present, inside, true},
		{"off", 500, Present, inside, false},
		{"warning", 2500, Present, inside, false},
		{"other timeline", 3500, Past, inside, false},
		{"no overlap", 3500, Present, outside, false},
		{"first on millisecond", 3000, Present, inside, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Lethal(tt.now, tt.tl, tt.r); got != tt.want {
				t.Errorf("Lethal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLaserPulse(t *testing.T) {
	l := newTestLaser(t, 0)

	if p := l.Pulse(100); p != 0 {
		t.Errorf("Pulse while off = %v, want 0", p)
	}
	if p := l.Pulse(4000); p != 1 {
		t.Errorf("Pulse while on = %v, want 1", p)
	}
	for now := int64(2000); now < 3000; now += 50 {
		if p := l.Pulse(now); p < 0 || p > 1 {
			t.Fatalf("Pulse(%d) = %v, out of [0, 1]", now, p)
		}
	}
}
