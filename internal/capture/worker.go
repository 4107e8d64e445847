package capture

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vedantwpatil/frame-snap/internal/metrics"
	"go.uber.org/zap"
)

// FrameSaver writes the frame currently playing to a file. The worker only
// borrows it; the playback handle stays owned by the session controller.
type FrameSaver interface {
	SaveFrame(dest string) error
}

// Config fixes where and how often a worker saves frames.
type Config struct {
	OutputRoot string
	Prefix     string
	Ext        string
	Captures   int
	Interval   time.Duration
}

// Result summarizes one capture run.
type Result struct {
	Token     uuid.UUID
	Source    string
	Dir       string
	Saved     int
	Skipped   int
	Completed bool
	Elapsed   time.Duration
}

// Worker saves up to Captures snapshots of one source at a fixed interval.
// A worker runs once; a cancelled worker is never restarted.
type Worker struct {
	token  uuid.UUID
	source string
	dir    string
	config Config
	saver  FrameSaver
	logger *zap.Logger

	cancel   context.CancelFunc
	doneChan chan struct{}
	result   Result
}

// NewWorker prepares a worker for source. Nothing runs until Start or Run.
func NewWorker(source string, saver FrameSaver, config Config, logger *zap.Logger) *Worker {
	token := uuid.New()
	dir := OutputDir(config.OutputRoot, source)
	return &Worker{
		token:    token,
		source:   source,
		dir:      dir,
		config:   config,
		saver:    saver,
		logger:   logger.With(zap.String("source", source), zap.String("token", token.String())),
		doneChan: make(chan struct{}),
	}
}

func (w *Worker) Token() uuid.UUID {
	return w.token
}

func (w *Worker) Dir() string {
	return w.dir
}

// Done is closed once the worker can no longer save frames.
func (w *Worker) Done() <-chan struct{} {
	return w.doneChan
}

// Start runs the capture loop on its own goroutine. onComplete is invoked
// after Done is closed, and only when every frame was attempted without
// cancellation. Start must be called once.
func (w *Worker) Start(ctx context.Context, onComplete func(Result)) {
	ctx, w.cancel = context.WithCancel(ctx)

	go func() {
		res := w.Run(ctx)
		w.cancel()
		w.result = res
		close(w.doneChan)

		if res.Completed && onComplete != nil {
			onComplete(res)
		}
	}()
}

// Cancel signals the worker without waiting for it.
func (w *Worker) Cancel() {
	if w.cancel != nil {
		w.cancel()
	}
}

// Stop cancels the worker and waits until it has returned. At most one
// frame save that was already in flight completes after Stop is called.
func (w *Worker) Stop() Result {
	if w.cancel == nil {
		return Result{Token: w.token, Source: w.source, Dir: w.dir}
	}
	w.cancel()
	<-w.doneChan
	return w.result
}

// Run is the capture loop. It returns when all frames were attempted or
// as soon as ctx is cancelled, whichever comes first.
func (w *Worker) Run(ctx context.Context) Result {
	res := Result{Token: w.token, Source: w.source, Dir: w.dir}
	started := time.Now()

	metrics.ActiveWorkers.Inc()
	defer metrics.ActiveWorkers.Dec()

	w.logger.Info("capture started",
		zap.String("dir", w.dir),
		zap.Int("captures", w.config.Captures),
		zap.Duration("interval", w.config.Interval),
	)

	for i := 1; i <= w.config.Captures; i++ {
		if ctx.Err() != nil {
			return w.finish(res, started)
		}

		if err := w.saveFrame(i); err != nil {
			res.Skipped++
			metrics.FramesSkippedTotal.Inc()
			w.logger.Warn("frame skipped", zap.Int("index", i), zap.Error(err))
		} else {
			res.Saved++
			metrics.FramesSavedTotal.Inc()
		}

		if !wait(ctx, w.config.Interval) {
			return w.finish(res, started)
		}
	}

	res.Completed = true
	return w.finish(res, started)
}

func (w *Worker) saveFrame(index int) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	return w.saver.SaveFrame(FramePath(w.dir, w.config.Prefix, index, w.config.Ext))
}

func (w *Worker) finish(res Result, started time.Time) Result {
	res.Elapsed = time.Since(started)

	outcome := metrics.OutcomeCancelled
	if res.Completed {
		outcome = metrics.OutcomeCompleted
	}
	metrics.CaptureRunsTotal.WithLabelValues(outcome).Inc()
	metrics.CaptureRunDuration.Observe(res.Elapsed.Seconds())

	w.logger.Info("capture finished",
		zap.String("outcome", outcome),
		zap.Int("saved", res.Saved),
		zap.Int("skipped", res.Skipped),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res
}

// wait sleeps for d and reports false if ctx was cancelled first.
func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
