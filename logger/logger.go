package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xrpscan/explorer/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "logs/explorer.log"

// Log discards everything until New is called
var Log = zerolog.Nop()
var loggerOnce sync.Once

// New builds the global logger. Output goes to stderr so commands can keep
// stdout for their results. LOG_TYPE=json switches the console writer off.
func New() {
	loggerOnce.Do(func() {
		Log = build(os.Stderr)
	})
}

func build(out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if level, err := zerolog.ParseLevel(config.EnvLogLevel()); err == nil && config.EnvLogLevel() != "" {
		zerolog.SetGlobalLevel(level)
	}

	console := consoleWriter(out)
	writers := []io.Writer{console}
	if config.EnvLogFileEnabled() {
		if fileWriter, err := rotatingFile(config.EnvLogFilePath()); err != nil {
			consoleLogger := zerolog.New(console).With().Timestamp().Logger()
			consoleLogger.Error().Err(err).Msg("Failed to create log directory, logging to console only")
		} else {
			writers = append(writers, fileWriter)
		}
	}

	return zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Str("service", "explorer").Logger()
}

func consoleWriter(out io.Writer) io.Writer {
	if config.EnvLogType() == "json" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

func rotatingFile(path string) (*lumberjack.Logger, error) {
	if path == "" {
		path = defaultLogFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.EnvLogFileMaxSize(), // MB
		MaxBackups: config.EnvLogFileMaxBackups(),
		MaxAge:     config.EnvLogFileMaxAge(), // days
		Compress:   true,
	}, nil
}
