// Package logging builds the application's slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"bundlemanifest/internal/config"
)

// Options control where log records go.
type Options struct {
	Level      string
	JSON       bool
	Directory  string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Console also writes records to Stdout when a Directory is set.
	Console bool
	Stdout  io.Writer
}

// OptionsFromConfig derives logger options: text to stdout in development,
// JSON everywhere else, always rotated into the logs directory.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Level:      cfg.GetLogLevel(),
		JSON:       !cfg.IsDevelopment(),
		Directory:  cfg.LogsDirectory,
		FileName:   cfg.AppName + "-" + cfg.Environment + ".log",
		MaxSizeMB:  cfg.LogsMaxSizeInMb,
		MaxBackups: cfg.LogsMaxBackups,
		MaxAgeDays: cfg.LogsMaxAgeInDays,
		Console:    !cfg.IsTest(),
	}
}

// New creates a logger. The returned closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	var (
		out    io.Writer = stdout
		closer io.Closer = nopCloser{}
	)
	if opts.Directory != "" {
		if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
			return nil, nil, err
		}
		name := opts.FileName
		if name == "" {
			name = "bundlemanifest.log"
		}
		file := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Directory, name),
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		closer = file
		out = file
		if opts.Console {
			out = io.MultiWriter(stdout, file)
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler), closer, nil
}

// ParseLevel maps a config log level to slog; unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
