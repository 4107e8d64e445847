package ui

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"github.com/vedantwpatil/frame-snap/internal/capture"
	"go.uber.org/zap"
)

const alertTitle = "frame-snap"

// AlertNotifier pops up a desktop dialog when a capture run finishes.
type AlertNotifier struct {
	logger *zap.Logger
}

func NewAlertNotifier(logger *zap.Logger) *AlertNotifier {
	return &AlertNotifier{logger: logger}
}

func (n *AlertNotifier) CaptureCompleted(res capture.Result) {
	robotgo.Alert(alertTitle, completionMessage(res))
	n.logger.Debug("completion alert dismissed", zap.String("source", res.Source))
}

// LogNotifier reports completion in the log only.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) CaptureCompleted(res capture.Result) {
	n.logger.Info(completionMessage(res))
}

func completionMessage(res capture.Result) string {
	msg := fmt.Sprintf("Saved %d frames of %s to %s", res.Saved, capture.BaseName(res.Source), res.Dir)
	if res.Skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped)", res.Skipped)
	}
	return msg
}

// LogDisplay records the primary screen size, which is what playback would
// be scaled against on this machine.
func LogDisplay(logger *zap.Logger) {
	w, h := robotgo.GetScreenSize()
	logger.Info("display detected", zap.Int("width", w), zap.Int("height", h))
}
