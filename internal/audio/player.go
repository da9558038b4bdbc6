// Package audio plays the game's synthesized sound cues through the
// system speaker. Audio is optional: when the device cannot be opened the
// player degrades to silence.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/clocked-in/internal/games/clockedin/world"
)

const sampleRate = beep.SampleRate(44100)

// Options configures a Player.
type Options struct {
	Volume      float64 // master volume, 0..1
	ThemeVolume float64 // relative volume of the background loop
	Logger      *log.Logger
}

// DefaultOptions mixes a quiet teleport effect over a quieter theme.
func DefaultOptions() Options {
	return Options{Volume: 0.5, ThemeVolume: 0.4}
}

// Player is a world.SoundSink backed by the beep speaker.
type Player struct {
	mu          sync.Mutex
	opts        Options
	mixer       *beep.Mixer
	theme       *beep.Ctrl
	initialized bool
	log         *log.Logger
}

// NewPlayer creates an uninitialized player. Play is a no-op until Init
// succeeds.
func NewPlayer(opts Options) *Player {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Player{
		opts:  opts,
		mixer: &beep.Mixer{},
		log:   opts.Logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences every stream. The speaker itself stays open for the
// lifetime of the process.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	if p.theme != nil {
		p.theme.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play implements world.SoundSink.
func (p *Player) Play(s world.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	stream := p.streamFor(s)
	if stream == nil {
		p.log.Debug("no stream for sound", "sound", s)
		return
	}
	speaker.Lock()
	p.mixer.Add(stream)
	speaker.Unlock()
}

// streamFor builds the stream for a cue. The theme is started once; later
// requests are ignored while it is still playing.
func (p *Player) streamFor(s world.Sound) beep.Streamer {
	switch s {
	case world.SoundTeleport:
		return TeleportStream(p.opts.Volume)
	case world.SoundTheme:
		if p.theme != nil && !p.theme.Paused {
			return nil
		}
		p.theme = &beep.Ctrl{Streamer: ThemeStream(p.opts.Volume * p.opts.ThemeVolume)}
		return p.theme
	default:
		return nil
	}
}

// TeleportStream is a short rising sweep played on every timeline swap.
func TeleportStream(vol float64) beep.Streamer {
	const d = 250 * time.Millisecond
	shaped := NewFade(NewSweep(300, 1200, d, sampleRate), d, 10*time.Millisecond, 120*time.Millisecond, sampleRate)
	return newVolume(shaped, vol*0.2)
}

// ThemeStream is the endless background loop.
func ThemeStream(vol float64) beep.Streamer {
	return newVolume(beep.Loop(-1, NewThemeBar(sampleRate)), vol)
}

// Sink returns p as a world.SoundSink, or a silent sink when muted.
func Sink(p *Player, muted bool) world.SoundSink {
	if muted || p == nil {
		return world.NopSink{}
	}
	return p
}
