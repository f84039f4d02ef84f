// Package app provides the public API of bundlemanifest.
// It re-exports the store and route types so other modules can render asset
// tags without importing internal packages.
package app

import (
	"io/fs"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/config"
	"bundlemanifest/internal/http"
	"bundlemanifest/internal/manifest"
	"bundlemanifest/internal/normalize"
	"bundlemanifest/internal/push"
)

// Re-export core types
type (
	Store   = manifest.Store
	Options = manifest.Options
	Option  = manifest.Option
	Route   = manifest.Route
	Config  = config.Config
)

// Re-export data model types
type (
	Asset    = bundles.Asset
	Kind     = bundles.Kind
	Manifest = bundles.Manifest
	Entry    = bundles.Entry
)

// Re-export collaborator types
type (
	Normalizer     = normalize.Normalizer
	NormalizerFunc = normalize.Func
	Hints          = push.Hints
	Link           = push.Link
	HintProvider   = manifest.HintProvider
)

// Re-export error types
type (
	LoadError            = manifest.LoadError
	UnsupportedKindError = manifest.UnsupportedKindError
)

// Asset kinds
const (
	KindStyle  = bundles.KindStyle
	KindScript = bundles.KindScript
)

// Sentinel errors
var (
	ErrManifestLoad    = manifest.ErrManifestLoad
	ErrUnsupportedKind = manifest.ErrUnsupportedKind
	ErrNoMatch         = normalize.ErrNoMatch
)

// Store options
var (
	WithNormalizer   = manifest.WithNormalizer
	WithPushProvider = manifest.WithPushProvider
	WithConfig       = manifest.WithConfig
)

// WithFS reads the manifest from fsys, e.g. an embedded build.
func WithFS(fsys fs.FS) Option {
	return manifest.WithFS(fsys)
}

// New creates a Store with default options
func New(options ...Option) *Store {
	return manifest.New(options...)
}

// NewWithOptions creates a Store; empty fields take their defaults
func NewWithOptions(o Options, options ...Option) *Store {
	return manifest.NewWithOptions(o, options...)
}

// GetConfig returns the process configuration
func GetConfig() *Config {
	return config.GetConfig()
}

// NewHTTPApp builds the HTTP application serving store
func NewHTTPApp(cfg *Config, store *Store, logger *slog.Logger) *fiber.App {
	return http.NewApp(cfg, store, logger)
}
