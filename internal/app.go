// Package internal contains core application functionality
package internal

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"bundlemanifest/internal/config"
	bmhttp "bundlemanifest/internal/http"
	"bundlemanifest/internal/logging"
	"bundlemanifest/internal/manifest"
)

// Application wires configuration, logging, the manifest store and the HTTP app
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *manifest.Store
	HTTP   *fiber.App

	logCloser io.Closer
}

type appOptions struct {
	manifestFS fs.FS
	logger     *slog.Logger
}

// AppOption customizes NewApp
type AppOption func(*appOptions)

// WithManifestFS reads the bundle manifest from fsys instead of the disk
func WithManifestFS(fsys fs.FS) AppOption {
	return func(o *appOptions) {
		o.manifestFS = fsys
	}
}

// WithLogger uses logger instead of building one from the configuration
func WithLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		o.logger = logger
	}
}

// NewApp creates a new application instance from the process configuration
func NewApp(opts ...AppOption) (*Application, error) {
	return NewAppWithConfig(config.GetConfig(), opts...)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config, opts ...AppOption) (*Application, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	var closer io.Closer = nopCloser{}
	if logger == nil {
		l, c, err := logging.New(logging.OptionsFromConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger, closer = l, c
	}

	storeOpts := []manifest.Option{manifest.WithConfig(cfg)}
	if o.manifestFS != nil {
		storeOpts = append(storeOpts, manifest.WithFS(o.manifestFS))
	}
	store := manifest.New(storeOpts...)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		HTTP:      bmhttp.NewApp(cfg, store, logger),
		logCloser: closer,
	}, nil
}

// StartAsync starts the HTTP server in the background
func (a *Application) StartAsync() error {
	// surface a broken build at startup rather than on the first request
	if _, err := a.Store.Manifest(); err != nil {
		a.Logger.Warn("Bundle manifest not loadable at startup", slog.Any("error", err))
	}

	addr := ":" + a.Config.GetPort()
	go func() {
		a.Logger.Info("HTTP server listening", slog.String("addr", addr))
		if err := a.HTTP.Listen(addr); err != nil {
			a.Logger.Error("HTTP server stopped", slog.Any("error", err))
		}
	}()
	return nil
}

// Shutdown stops the HTTP server and releases the log file
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.HTTP.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return a.Close()
}

// Close releases the log file
func (a *Application) Close() error {
	return a.logCloser.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
