package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedantwpatil/frame-snap/internal/capture"
	"github.com/vedantwpatil/frame-snap/internal/config"
	"github.com/vedantwpatil/frame-snap/internal/logger"
	"github.com/vedantwpatil/frame-snap/internal/metrics"
	"github.com/vedantwpatil/frame-snap/internal/player"
	"github.com/vedantwpatil/frame-snap/internal/session"
	"github.com/vedantwpatil/frame-snap/internal/ui"
	"go.uber.org/zap"
)

const snapshotQuality = 90

type Application struct {
	config     *config.Config
	logger     *zap.Logger
	controller *session.Controller
	menu       *ui.Menu
	hotkeys    *ui.Hotkeys
	metricsSrv *http.Server
}

func main() {
	cfg, warnings := config.Load(os.Args[1:])

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	for _, w := range warnings {
		zl.Warn("invalid configuration, using default", zap.Error(w))
	}

	app := NewApplication(cfg, zl)
	app.Run()
}

func NewApplication(cfg *config.Config, zl *zap.Logger) *Application {
	app := &Application{config: cfg, logger: zl}

	libDir := config.LibDir(cfg.LibPath)
	if err := player.AddSearchPath(libDir); err != nil {
		zl.Warn("could not add library path", zap.String("dir", libDir), zap.Error(err))
	}
	if err := player.CheckInstallation(); err != nil {
		zl.Warn("ffmpeg not found, playback will fail", zap.String("lib", libDir), zap.Error(err))
	}

	engine := player.NewVidioEngine(player.NewEncoder(snapshotQuality), zl.Named("player"))

	stdin := bufio.NewReader(os.Stdin)
	chooser := ui.NewPromptChooser(stdin, os.Stdout, cfg.ChooseRoot)
	app.menu = ui.NewMenu(stdin, os.Stdout)

	var notifier session.Notifier = ui.NewLogNotifier(zl.Named("notify"))
	if cfg.Notify {
		ui.LogDisplay(zl)
		notifier = ui.NewAlertNotifier(zl.Named("notify"))
	}

	app.controller = session.NewController(engine, chooser, session.Config{
		Capture: capture.Config{
			OutputRoot: cfg.OutputRoot,
			Prefix:     cfg.Prefix,
			Ext:        cfg.Ext,
			Captures:   cfg.Captures,
			Interval:   cfg.Interval(),
		},
		CaptureOnFailedPlay: cfg.CaptureOnFailedPlay,
	}, zl, session.WithExit(app.exit), session.WithNotifier(notifier))

	if cfg.Hotkeys {
		app.hotkeys = ui.NewHotkeys(ui.DefaultBindings, app.controller.Handle, zl.Named("hotkeys"))
	}

	return app
}

// Run blocks on the menu until the user exits.
func (a *Application) Run() {
	a.logger.Info("frame-snap started",
		zap.String("output", a.config.OutputRoot),
		zap.Int("captures", a.config.Captures),
		zap.Duration("interval", a.config.Interval()),
	)

	if a.config.MetricsPort > 0 {
		a.metricsSrv = metrics.StartMetricsServer(a.config.MetricsPort, a.logger)
	}
	if a.hotkeys != nil {
		go a.hotkeys.Run()
	}
	go a.handleSignals()

	for {
		intent, err := a.menu.Next()
		if err == io.EOF {
			a.logger.Info("input closed")
			a.controller.Exit()
			return
		}
		if err != nil {
			a.logger.Error("failed to read menu choice", zap.Error(err))
			a.controller.Exit()
			return
		}
		a.controller.Handle(intent)
	}
}

// handleSignals stops the current video on SIGINT/SIGTERM, or exits when
// nothing is playing.
func (a *Application) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for sig := range sigChan {
		a.logger.Info("received signal", zap.String("signal", sig.String()))

		if a.controller.Playing() {
			a.controller.Handle(session.IntentStop)
			continue
		}
		a.controller.Handle(session.IntentExit)
	}
}

func (a *Application) exit(code int) {
	if a.hotkeys != nil {
		a.hotkeys.Stop()
	}
	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.metricsSrv.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics server shutdown", zap.Error(err))
		}
		cancel()
	}
	_ = a.logger.Sync()
	os.Exit(code)
}
