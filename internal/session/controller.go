package session

import (
	"context"
	"os"
	"sync"

	"github.com/vedantwpatil/frame-snap/internal/capture"
	"github.com/vedantwpatil/frame-snap/internal/player"
	"go.uber.org/zap"
)

// Chooser asks the user for a video. ok is false when the user cancelled.
type Chooser interface {
	Choose() (path string, ok bool, err error)
}

// Notifier is told when a capture run finished on its own.
type Notifier interface {
	CaptureCompleted(res capture.Result)
}

// Config is the capture setup applied to every play.
type Config struct {
	Capture capture.Config
	// CaptureOnFailedPlay starts a worker even when the engine refused the
	// file. Every frame of such a run is skipped.
	CaptureOnFailedPlay bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithExit replaces os.Exit as the way Exit terminates the process.
func WithExit(exit func(code int)) Option {
	return func(c *Controller) {
		c.exit = exit
	}
}

// WithNotifier reports completed capture runs to n.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// Controller owns the playback engine and at most one capture worker.
// Every operation takes the same lock, so intents arriving from the menu,
// hotkeys and signals are applied one at a time.
type Controller struct {
	engine   player.Engine
	chooser  Chooser
	config   Config
	logger   *zap.Logger
	exit     func(code int)
	notifier Notifier

	mu     sync.Mutex
	active *capture.Worker
}

// NewController returns an idle controller that owns engine.
func NewController(engine player.Engine, chooser Chooser, config Config, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		engine:  engine,
		chooser: chooser,
		config:  config,
		logger:  logger,
		exit:    os.Exit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle applies one intent.
func (c *Controller) Handle(intent Intent) {
	c.logger.Debug("intent received", zap.Stringer("intent", intent))

	switch intent {
	case IntentChooseFile:
		c.ChooseAndPlay()
	case IntentMute:
		c.Mute()
	case IntentStop:
		c.Stop()
	case IntentExit:
		c.Exit()
	default:
		c.logger.Warn("unknown intent", zap.Int("intent", int(intent)))
	}
}

// ChooseAndPlay asks the chooser for a file and plays it. The chooser runs
// outside the lock so a slow prompt never blocks other intents.
func (c *Controller) ChooseAndPlay() {
	path, ok, err := c.chooser.Choose()
	if err != nil {
		c.logger.Warn("file selection failed", zap.Error(err))
		return
	}
	if !ok {
		c.logger.Info("file selection cancelled")
		return
	}
	c.PlayFrom(path)
}

// PlayFrom replaces the current playback with path and starts a capture
// worker for it. The previous worker is stopped before the engine switches
// files, so none of its frames can land after the new video begins.
func (c *Controller) PlayFrom(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelWorker()

	err := c.engine.Play(path)
	if err != nil {
		c.logger.Error("failed to play video", zap.String("path", path), zap.Error(err))
		if !c.config.CaptureOnFailedPlay {
			return err
		}
	} else {
		c.logger.Info("playing video", zap.String("path", path), zap.Duration("time", c.engine.Time()))
	}

	c.startWorker(path)
	return err
}

// Stop halts playback and cancels the worker. A worker is cancelled even
// when the engine already stopped on its own, e.g. at end of media.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Mute toggles the mute flag of the current playback.
func (c *Controller) Mute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.engine.IsPlaying() {
		return
	}
	muted := !c.engine.IsMuted()
	c.engine.Mute(muted)
	c.logger.Info("mute toggled", zap.Bool("muted", muted))
}

// Exit releases playback and any worker, then terminates with status 0.
func (c *Controller) Exit() {
	c.logger.Info("exiting")
	c.Close()
	c.exit(0)
}

// Close releases playback and any worker without exiting. The controller
// stays usable afterwards.
func (c *Controller) Close() {
	c.Stop()
}

// Playing reports whether the engine is currently playing.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.IsPlaying()
}

// Capturing reports whether a worker is attached.
func (c *Controller) Capturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

func (c *Controller) stopLocked() {
	c.cancelWorker()
	if !c.engine.IsPlaying() {
		return
	}
	c.engine.Stop()
	c.logger.Info("playback stopped")
}

// cancelWorker blocks until the active worker has returned. Workers never
// take c.mu before closing their done channel, so this cannot deadlock.
func (c *Controller) cancelWorker() {
	if c.active == nil {
		return
	}
	w := c.active
	c.active = nil

	res := w.Stop()
	c.logger.Info("capture cancelled",
		zap.String("token", res.Token.String()),
		zap.Int("saved", res.Saved),
	)
}

func (c *Controller) startWorker(path string) {
	w := capture.NewWorker(path, c.engine, c.config.Capture, c.logger.Named("capture"))
	c.active = w
	w.Start(context.Background(), func(res capture.Result) {
		c.workerCompleted(w, res)
	})
}

// workerCompleted stops playback once a run has attempted every frame.
// Reports from a worker that was already replaced or cancelled are ignored.
func (c *Controller) workerCompleted(w *capture.Worker, res capture.Result) {
	c.mu.Lock()
	if c.active != w {
		c.mu.Unlock()
		return
	}
	c.active = nil
	c.stopLocked()
	c.mu.Unlock()

	c.logger.Info("capture completed",
		zap.String("source", res.Source),
		zap.Int("saved", res.Saved),
		zap.Int("skipped", res.Skipped),
	)
	if c.notifier != nil {
		c.notifier.CaptureCompleted(res)
	}
}
