package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/clocked-in/internal/games/clockedin/world"
)

func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total
}

func TestSweepIsFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewSweep(100, 400, 100*time.Millisecond, rate)

	if got := drain(t, s, 100000); got != rate.N(100*time.Millisecond) {
		t.Errorf("streamed %d samples, want %d", got, rate.N(100*time.Millisecond))
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestFadeStartsAndEndsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 50 * time.Millisecond
	f := NewFade(NewSweep(440, 440, d, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(d))
	n, _ := f.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d samples, want %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", buf[0][0])
	}
	last := buf[n-1][0]
	if last > 0.05 || last < -0.05 {
		t.Errorf("last sample = %f, want near silence", last)
	}
}

func TestThemeBarLoops(t *testing.T) {
	rate := beep.SampleRate(8000)
	bar := NewThemeBar(rate)

	if got := drain(t, bar, 1<<20); got != bar.Len() {
		t.Errorf("bar streamed %d samples, want %d", got, bar.Len())
	}

	loop := beep.Loop(-1, NewThemeBar(rate))
	if got := drain(t, loop, 3*bar.Len()); got < 3*bar.Len() {
		t.Errorf("loop stopped after %d samples", got)
	}
}

func TestPlayerWithoutSpeakerIsSilent(t *testing.T) {
	p := NewPlayer(DefaultOptions())

	// Never initialized: Play must not touch the speaker.
	p.Play(world.SoundTeleport)
	p.Play(world.SoundTheme)
	p.Close()

	if _, ok := Sink(p, true).(world.NopSink); !ok {
		t.Error("muted sink is not silent")
	}
	if Sink(p, false) != world.SoundSink(p) {
		t.Error("unmuted sink is not the player")
	}
	if _, ok := Sink(nil, false).(world.NopSink); !ok {
		t.Error("nil player is not silent")
	}
}
