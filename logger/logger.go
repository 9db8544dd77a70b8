package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Segment is the view a logger gets of the emitting pipeline segment.
// The segment's own debug/verbose levels drive severity gating.
type Segment interface {
	// Path returns the full label path of the segment.
	Path() string
	// DebugLevel returns the segment's effective debug level.
	DebugLevel() int
	// VerboseLevel returns the segment's effective verbose level.
	VerboseLevel() int
}

// Logger is the pluggable diagnostic sink for pipeline segments.
type Logger interface {
	// Error reports a terminating failure. Always emitted.
	Error(seg Segment, msg string, items ...any)
	// Warn reports a recoverable condition. Always emitted.
	Warn(seg Segment, msg string, items ...any)
	// Info reports progress. Emitted when the segment has verbose or debug
	// enabled.
	Info(seg Segment, msg string, items ...any)
	// Debug reports internal decisions. Emitted when the segment has debug
	// enabled.
	Debug(seg Segment, msg string, items ...any)
}

// Factory produces a Logger for an engine.
type Factory func() Logger

// Standard is the default Logger backed by zerolog.
type Standard struct {
	zl zerolog.Logger
}

// New creates a Standard logger from config.
func New(cfg *Config) *Standard {
	cfg.ApplyDefaults()
	return NewTo(outputWriter(cfg.Output), cfg)
}

// NewTo creates a Standard logger writing to w. Used by tests to capture
// output.
func NewTo(w io.Writer, cfg *Config) *Standard {
	cfg.ApplyDefaults()

	var zl zerolog.Logger
	if strings.ToLower(cfg.Format) == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
			NoColor:    cfg.NoColor,
		})
	} else {
		zl = zerolog.New(w)
	}
	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}

	return &Standard{zl: zl}
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Standard {
	return New(&Config{})
}

// Error reports a terminating failure.
func (l *Standard) Error(seg Segment, msg string, items ...any) {
	l.emit(l.zl.Error(), seg, msg, items)
}

// Warn reports a recoverable condition.
func (l *Standard) Warn(seg Segment, msg string, items ...any) {
	l.emit(l.zl.Warn(), seg, msg, items)
}

// Info reports progress when the segment has verbose or debug enabled.
func (l *Standard) Info(seg Segment, msg string, items ...any) {
	if seg.VerboseLevel() <= 0 && seg.DebugLevel() <= 0 {
		return
	}
	l.emit(l.zl.Info(), seg, msg, items)
}

// Debug reports internal decisions when the segment has debug enabled.
func (l *Standard) Debug(seg Segment, msg string, items ...any) {
	if seg.DebugLevel() <= 0 {
		return
	}
	l.emit(l.zl.Debug(), seg, msg, items)
}

func (l *Standard) emit(event *zerolog.Event, seg Segment, msg string, items []any) {
	event = event.Str("segment", seg.Path())
	if len(items) > 0 && seg.VerboseLevel() > 1 {
		event = event.Str("items", formatItems(items))
	}
	event.Msg(msg)
}

func formatItems(items []any) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%v", item)
	}
	return strings.Join(parts, ", ")
}

func outputWriter(output string) *os.File {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout
	default:
		return os.Stderr
	}
}
