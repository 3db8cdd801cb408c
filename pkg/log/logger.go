package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const timeFormat = "15:04:05"

// Logger is the process logger. It is replaced by Init.
var Logger zerolog.Logger

// Config describes how the frontend wants logging set up.
type Config struct {
	// Verbosity is the number of -v flags: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Quiet discards all log output regardless of Verbosity.
	Quiet bool
	// Out defaults to stderr.
	Out     io.Writer
	NoColor bool
}

func init() {
	Init(Config{})
}

// Level maps a Config to the zerolog level it enables.
func Level(cfg Config) zerolog.Level {
	if cfg.Quiet {
		return zerolog.Disabled
	}

	switch {
	case cfg.Verbosity <= 0:
		return zerolog.WarnLevel
	case cfg.Verbosity == 1:
		return zerolog.InfoLevel
	case cfg.Verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New builds a console logger for cfg without touching the global one.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
		NoColor:    cfg.NoColor,
	}

	return zerolog.New(output).
		Level(Level(cfg)).
		With().
		Timestamp().
		Logger()
}

// Init replaces the process logger with one built from cfg.
func Init(cfg Config) {
	Logger = New(cfg)
	log.Logger = Logger
}

// Info starts an info level message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Error starts an error level message.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Warn starts a warning level message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Debug starts a debug level message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Trace starts a trace level message.
func Trace() *zerolog.Event {
	return Logger.Trace()
}
