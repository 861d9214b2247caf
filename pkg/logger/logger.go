package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger wraps zerolog.Logger with scamshield-specific helpers
type Logger struct {
	zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level      string
	Format     string // "console" or "json"
	TimeFormat string
	Output     io.Writer
}

// New creates a new logger with the given configuration
func New(cfg Config) *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	return &Logger{
		Logger: zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger(),
	}
}

// ForEnvironment builds the service logger from cfg. Production always
// logs JSON so log shippers can parse it.
func ForEnvironment(env string, cfg Config) *Logger {
	if env == "production" {
		cfg.Format = "json"
	}
	return New(cfg)
}

// NewCLI writes console output to w, quiet unless verbose
func NewCLI(w io.Writer, verbose bool) *Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return New(Config{Level: level, Format: "console", TimeFormat: "15:04:05", Output: w})
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithComponent returns a new logger with the component field set
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With().Str("component", component).Logger()}
}

// WithScanKind returns a new logger tagged with the scan kind (url, text, ...)
func (l *Logger) WithScanKind(kind string) *Logger {
	return &Logger{Logger: l.With().Str("scan_kind", kind).Logger()}
}

// WithRequest tags a logger with the request id and route of one HTTP call
func (l *Logger) WithRequest(requestID, method, path string) *Logger {
	zc := l.With().Str("method", method).Str("path", path)
	if requestID != "" {
		zc = zc.Str("request_id", requestID)
	}
	return &Logger{Logger: zc.Logger()}
}

type ctxKey struct{}

// WithContext stores l in ctx
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or the global one
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return global
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "disabled", "off":
		return zerolog.Disabled
	case "warning":
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

var global = New(Config{Level: "info", Format: "console"})

// SetGlobal replaces the logger FromContext falls back to
func SetGlobal(l *Logger) {
	global = l
}
