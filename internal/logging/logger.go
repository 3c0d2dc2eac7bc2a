// Package logging builds the zerolog loggers used across trustboard and
// carries them, together with a per-invocation trace ID, through context.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output targets understood by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Formats understood by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatText    = "text"
)

const logFilePerm = 0o600

// Config describes how a logger should be built.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool

	// Writer overrides Output when set. Used by tests.
	Writer io.Writer
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when log lines go to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackUsed is true when a file was requested but could not be opened
	// and stderr was used instead.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg, ignoring file fallback details.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger from cfg and reports where it writes.
// A file that cannot be opened degrades to stderr rather than failing.
func NewLoggerWithPath(cfg Config) LogPathResult {
	var result LogPathResult

	out := cfg.Writer
	if out == nil {
		switch {
		case cfg.Output == OutputStdout:
			out = os.Stdout
		case cfg.File != "" || cfg.Output == OutputFile:
			f, err := openLogFile(cfg.File)
			if err != nil {
				result.FallbackUsed = true
				result.FallbackReason = err.Error()
				out = os.Stderr
			} else {
				result.UsingFile = true
				result.FilePath = cfg.File
				result.file = f
				out = f
			}
		default:
			out = os.Stderr
		}
	}

	if isConsoleFormat(cfg.Format) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: result.UsingFile}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).Hook(TraceHook{}).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()
	return result
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func isConsoleFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatConsole, FormatText:
		return true
	default:
		return false
	}
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where log output is going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user the log file could not be used.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}
