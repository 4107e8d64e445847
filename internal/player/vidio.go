package player

import (
	"fmt"
	"image"
	"sync"
	"time"

	vidio "github.com/AlexEidt/Vidio"
	"go.uber.org/zap"
)

const fallbackFPS = 25.0

// frameSource is the part of *vidio.Video the engine reads from.
type frameSource interface {
	Read() bool
	FrameBuffer() []byte
	Width() int
	Height() int
	FPS() float64
	Close()
}

func openVidio(path string) (frameSource, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// VidioEngine plays a video by decoding it with Vidio (ffmpeg) in real time.
// It renders nothing: it keeps the latest decoded frame and the playback
// position so snapshots can be taken while the video runs. Mute only
// records the flag because no audio is produced.
type VidioEngine struct {
	logger  *zap.Logger
	encoder *Encoder
	open    func(path string) (frameSource, error)

	mu       sync.Mutex
	frame    *image.RGBA
	playing  bool
	muted    bool
	position time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewVidioEngine(encoder *Encoder, logger *zap.Logger) *VidioEngine {
	return &VidioEngine{
		logger:  logger,
		encoder: encoder,
		open:    openVidio,
	}
}

// Play stops whatever is playing and starts decoding path. The first frame
// is decoded before Play returns.
func (e *VidioEngine) Play(path string) error {
	e.Stop()

	src, err := e.open(path)
	if err != nil {
		return fmt.Errorf("open video %s: %w", path, err)
	}

	fps := src.FPS()
	if fps <= 0 {
		fps = fallbackFPS
	}

	if !src.Read() {
		src.Close()
		return fmt.Errorf("read first frame of %s: %w", path, ErrNoFrame)
	}
	first := copyFrame(src)

	stopChan := make(chan struct{})
	doneChan := make(chan struct{})

	e.mu.Lock()
	e.frame = first
	e.playing = true
	e.position = 0
	e.stopChan = stopChan
	e.doneChan = doneChan
	e.mu.Unlock()

	e.logger.Info("playback started",
		zap.String("path", path),
		zap.Int("width", src.Width()),
		zap.Int("height", src.Height()),
		zap.Float64("fps", fps),
	)

	go e.decode(src, fps, stopChan, doneChan)
	return nil
}

func (e *VidioEngine) decode(src frameSource, fps float64, stopChan, doneChan chan struct{}) {
	defer close(doneChan)
	defer src.Close()

	frameTime := time.Duration(float64(time.Second) / fps)
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-stopChan:
			return
		case <-ticker.C:
			if !src.Read() {
				e.mu.Lock()
				e.playing = false
				e.mu.Unlock()
				e.logger.Info("playback reached end of media")
				return
			}
			frame := copyFrame(src)

			e.mu.Lock()
			e.frame = frame
			e.position += frameTime
			e.mu.Unlock()
		}
	}
}

// Stop halts decoding and waits for the decoder to release the file. It is
// safe to call when nothing is playing.
func (e *VidioEngine) Stop() {
	e.mu.Lock()
	stopChan, doneChan := e.stopChan, e.doneChan
	e.stopChan, e.doneChan = nil, nil
	e.playing = false
	e.mu.Unlock()

	if stopChan == nil {
		return
	}
	close(stopChan)
	<-doneChan
}

func (e *VidioEngine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

func (e *VidioEngine) Mute(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
}

func (e *VidioEngine) IsMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *VidioEngine) Time() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// SaveFrame encodes the latest decoded frame to dest. Frames are never
// mutated after decode, so encoding happens outside the lock.
func (e *VidioEngine) SaveFrame(dest string) error {
	e.mu.Lock()
	frame, playing := e.frame, e.playing
	e.mu.Unlock()

	if !playing {
		return ErrNotPlaying
	}
	if frame == nil {
		return ErrNoFrame
	}
	return e.encoder.EncodeFile(frame, dest)
}

// copyFrame detaches the current frame from the decoder's reused buffer.
func copyFrame(src frameSource) *image.RGBA {
	buf := src.FrameBuffer()
	w, h := src.Width(), src.Height()

	pix := make([]byte, len(buf))
	copy(pix, buf)

	return &image.RGBA{
		Pix:    pix,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}
