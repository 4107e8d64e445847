package player

import (
	"errors"
	"time"
)

var (
	// ErrNotPlaying is returned by SaveFrame when no media is playing.
	ErrNotPlaying = errors.New("player: nothing is playing")
	// ErrNoFrame is returned when the media has not produced a frame yet.
	ErrNoFrame = errors.New("player: no frame decoded")
)

// Engine is the media playback handle driven by the session controller.
// Every call is a bounded, synchronous operation.
type Engine interface {
	Play(path string) error
	Stop()
	IsPlaying() bool
	Mute(muted bool)
	IsMuted() bool
	// Time is the playback position of the current media.
	Time() time.Duration
	// SaveFrame writes the frame currently on screen to dest.
	SaveFrame(dest string) error
}
