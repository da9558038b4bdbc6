package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sweep is a sine oscillator whose frequency glides from `from` to `to`
// over its duration.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	total    int
}

// NewSweep creates a finite frequency sweep.
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(duration)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		val := math.Sin(2 * math.Pi * s.phase)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// fade applies a linear attack and release to a finite stream.
type fade struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// NewFade shapes s with a linear attack and release over duration.
func NewFade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.attack > 0 && f.pos < f.attack {
			vol = float64(f.pos) / float64(f.attack)
		}
		if remaining := f.total - f.pos; f.release > 0 && remaining < f.release {
			vol = math.Max(0, float64(remaining)/float64(f.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// themeBar is one bar of the background loop: a slow arpeggio over a
// low drone. It is finite so beep.Loop can repeat it.
type themeBar struct {
	rate  beep.SampleRate
	notes []float64
	step  int
	pos   int
	total int
}

// NewThemeBar creates one bar of the theme.
func NewThemeBar(rate beep.SampleRate) beep.StreamSeeker {
	notes := []float64{220, 261.63, 329.63, 392, 329.63, 261.63}
	step := rate.N(300 * time.Millisecond)
	return &themeBar{rate: rate, notes: notes, step: step, total: step * len(notes)}
}

func (b *themeBar) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.rate)
		note := b.notes[b.pos/b.step]
		inNote := float64(b.pos%b.step) / float64(b.step)

		lead := 0.3 * math.Exp(-inNote*4) * math.Sin(2*math.Pi*note*t)
		drone := 0.15 * math.Sin(2*math.Pi*110*t)
		val := lead + drone

		samples[i][0] = val
		samples[i][1] = val
		b.pos++
	}
	return len(samples), true
}

func (b *themeBar) Err() error { return nil }

func (b *themeBar) Len() int { return b.total }

func (b *themeBar) Position() int { return b.pos }

func (b *themeBar) Seek(p int) error {
	b.pos = max(0, min(p, b.total))
	return nil
}

// newVolume scales s by a linear factor. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
