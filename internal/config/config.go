package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultIntervalMs = 200
	DefaultCaptures   = 250
	DefaultPrefix     = "Capture_"
	DefaultExt        = ".png"
	DefaultChooseRoot = "."
	DefaultLogLevel   = "info"

	// MaxIntervalMs caps the capture interval at one hour.
	MaxIntervalMs = 60 * 60 * 1000

	envPrefix = "FRAMESNAP_"
)

// Config holds all runtime configuration. It is fixed once Load returns.
type Config struct {
	IntervalMs int    `env:"INTERVAL_MS" envDefault:"200"`
	Captures   int    `env:"CAPTURES" envDefault:"250"`
	OutputRoot string `env:"OUTPUT_ROOT"`
	Prefix     string `env:"SNAPSHOT_PREFIX" envDefault:"Capture_"`
	Ext        string `env:"SNAPSHOT_EXT" envDefault:".png"`
	LibPath    string `env:"LIB_PATH"`
	ChooseRoot string `env:"CHOOSE_ROOT" envDefault:"."`

	// CaptureOnFailedPlay starts the capture worker even when the engine
	// refused to play the file.
	CaptureOnFailedPlay bool `env:"CAPTURE_ON_FAILED_PLAY" envDefault:"false"`

	Hotkeys     bool   `env:"HOTKEYS" envDefault:"true"`
	Notify      bool   `env:"NOTIFY" envDefault:"false"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		IntervalMs: DefaultIntervalMs,
		Captures:   DefaultCaptures,
		OutputRoot: defaultOutputRoot(),
		Prefix:     DefaultPrefix,
		Ext:        DefaultExt,
		LibPath:    DefaultLibPath(currentOS()),
		ChooseRoot: DefaultChooseRoot,
		Hotkeys:    true,
		LogLevel:   DefaultLogLevel,
	}
}

// Interval is the pause between two captures.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Load builds the configuration from the process environment and args
// (without the program name). It never fails: every value that cannot be
// parsed is reported in warnings and replaced by its default.
func Load(args []string) (*Config, []error) {
	return LoadFrom(args, nil)
}

// LoadFrom is Load with an explicit environment. A nil environ reads the
// process environment.
func LoadFrom(args []string, environ map[string]string) (*Config, []error) {
	var warnings []error

	cfg := NewConfig()
	warnings = append(warnings, cfg.applyEnv(environ)...)
	warnings = append(warnings, cfg.applyArgs(args)...)
	warnings = append(warnings, cfg.validate()...)
	return cfg, warnings
}

// applyEnv reads FRAMESNAP_* variables. A variable that fails to parse
// leaves its field at the default; the other variables still apply.
func (c *Config) applyEnv(environ map[string]string) []error {
	err := env.ParseWithOptions(c, env.Options{Prefix: envPrefix, Environment: environ})
	if err == nil {
		return nil
	}

	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return []error{fmt.Errorf("environment: %w", err)}
	}

	defaults := NewConfig()
	var warnings []error
	for _, fieldErr := range agg.Errors {
		var pe env.ParseError
		if errors.As(fieldErr, &pe) {
			c.resetField(pe.Name, defaults)
		}
		warnings = append(warnings, fmt.Errorf("environment: %w, using default", fieldErr))
	}
	return warnings
}

func (c *Config) resetField(name string, defaults *Config) {
	dst := reflect.ValueOf(c).Elem().FieldByName(name)
	if !dst.IsValid() || !dst.CanSet() {
		return
	}
	dst.Set(reflect.ValueOf(defaults).Elem().FieldByName(name))
}

// applyArgs parses flags first, then the positional form
// [libPath] [intervalMs].
func (c *Config) applyArgs(args []string) []error {
	var warnings []error

	fs := flag.NewFlagSet("frame-snap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	interval := fs.String("interval", "", "Milliseconds between captures")
	captures := fs.String("captures", "", "Number of frames to capture per video")
	metricsPort := fs.String("metrics-port", "", "Port for /metrics (0 = disabled)")
	fs.StringVar(&c.OutputRoot, "out", c.OutputRoot, "Root directory for captures")
	fs.StringVar(&c.LibPath, "lib", c.LibPath, "Directory holding the ffmpeg binaries")
	fs.StringVar(&c.Ext, "ext", c.Ext, "Snapshot file extension")
	fs.StringVar(&c.Prefix, "prefix", c.Prefix, "Snapshot file name prefix")
	fs.StringVar(&c.ChooseRoot, "choose-root", c.ChooseRoot, "Initial directory for the file chooser")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.Var(boolFlag{&c.CaptureOnFailedPlay}, "capture-on-failed-play", "Capture even if play fails")
	fs.Var(boolFlag{&c.Hotkeys}, "hotkeys", "Enable global hotkeys")
	fs.Var(boolFlag{&c.Notify}, "notify", "Show an alert when a capture run completes")

	// A bad flag is dropped on its own. Parse consumes the offending
	// argument, so resuming from fs.Args() always makes progress.
	rest := args
	for {
		err := fs.Parse(rest)
		if err == nil {
			break
		}
		warnings = append(warnings, fmt.Errorf("argument ignored: %w", err))
		rest = fs.Args()
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.TrimSpace(positional[0]) != "" {
		c.LibPath = NormalizeRoute(positional[0])
	}
	if len(positional) > 1 && *interval == "" {
		*interval = positional[1]
	}

	if *interval != "" {
		if err := setInt(&c.IntervalMs, "interval", *interval); err != nil {
			warnings = append(warnings, err)
		}
	}
	if *captures != "" {
		if err := setInt(&c.Captures, "captures", *captures); err != nil {
			warnings = append(warnings, err)
		}
	}
	if *metricsPort != "" {
		if err := setInt(&c.MetricsPort, "metrics-port", *metricsPort); err != nil {
			warnings = append(warnings, err)
		}
	}
	return warnings
}

func (c *Config) validate() []error {
	var warnings []error

	if c.IntervalMs <= 0 || c.IntervalMs > MaxIntervalMs {
		warnings = append(warnings, fmt.Errorf("interval %dms out of range, using %dms", c.IntervalMs, DefaultIntervalMs))
		c.IntervalMs = DefaultIntervalMs
	}
	if c.Captures <= 0 {
		warnings = append(warnings, fmt.Errorf("captures %d out of range, using %d", c.Captures, DefaultCaptures))
		c.Captures = DefaultCaptures
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		warnings = append(warnings, fmt.Errorf("metrics port %d out of range, metrics disabled", c.MetricsPort))
		c.MetricsPort = 0
	}
	if c.OutputRoot == "" {
		c.OutputRoot = defaultOutputRoot()
	}
	if c.LibPath == "" {
		c.LibPath = DefaultLibPath(currentOS())
	} else {
		c.LibPath = NormalizeRoute(c.LibPath)
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	switch {
	case c.Ext == "":
		c.Ext = DefaultExt
	case !strings.HasPrefix(c.Ext, "."):
		c.Ext = "." + c.Ext
	}
	if c.ChooseRoot == "" {
		c.ChooseRoot = DefaultChooseRoot
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return warnings
}

// boolFlag is a bool flag that keeps its previous value when the argument
// does not parse.
type boolFlag struct {
	dst *bool
}

func (b boolFlag) IsBoolFlag() bool { return true }

func (b boolFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b.dst = v
	return nil
}

func (b boolFlag) String() string {
	if b.dst == nil {
		return "false"
	}
	return strconv.FormatBool(*b.dst)
}

var errNotANumber = errors.New("not a number")

func setInt(dst *int, name, raw string) error {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s %q: %w, using %d", name, raw, errNotANumber, *dst)
	}
	*dst = v
	return nil
}

func defaultOutputRoot() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}
