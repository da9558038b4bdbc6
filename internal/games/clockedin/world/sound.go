package world

// Sound names an audio cue the session asks its collaborator to play.
type Sound int

const (
	SoundTeleport Sound = iota // timeline swap
	SoundTheme                 // background loop, started once
)

// String returns the cue name.
func (s Sound) String() string {
	switch s {
	case SoundTeleport:
		return "teleport"
	case SoundTheme:
		return "theme"
	default:
		return "unknown"
	}
}

// SoundSink receives fire-and-forget audio cues.
type SoundSink interface {
	Play(Sound)
}

// NopSink discards every cue.
type NopSink struct{}

// Play does nothing.
func (NopSink) Play(Sound) {}
