// Package manifest resolves routes against a bundle manifest and renders the
// script and stylesheet tags a page needs.
package manifest

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/config"
	"bundlemanifest/internal/normalize"
	"bundlemanifest/internal/push"
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultManifest   = "dist/bundles.json"
	DefaultServerRoot = "/"
)

// Options configure a Store.
type Options struct {
	// Manifest is the manifest file location. Relative paths are resolved
	// against Root.
	Manifest string
	// ServerRoot prefixes every rendered asset path.
	ServerRoot string
	// Root is the project root; defaults to the working directory.
	Root string
	// PushCacheSize bounds the push hint cache.
	PushCacheSize int
}

// HintProvider computes preload hints for an identifier.
type HintProvider interface {
	For(identifier string) *push.Hints
}

// Option customizes a Store.
type Option func(*Store)

// WithFS reads the manifest from fsys instead of the OS filesystem.
func WithFS(fsys fs.FS) Option {
	return func(s *Store) {
		s.readFile = func(name string) ([]byte, error) {
			return fs.ReadFile(fsys, fsPath(name))
		}
	}
}

// WithNormalizer replaces the identifier normalizer.
func WithNormalizer(n normalize.Normalizer) Option {
	return func(s *Store) {
		s.normalizer = n
	}
}

// WithPushProvider replaces the push hint provider.
func WithPushProvider(p HintProvider) Option {
	return func(s *Store) {
		s.push = p
	}
}

// WithConfig takes manifest, server root, project root and cache size from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Store) {
		if cfg.ManifestPath != "" {
			s.opts.Manifest = cfg.ManifestPath
		}
		if cfg.ServerRoot != "" {
			s.opts.ServerRoot = cfg.ServerRoot
		}
		if cfg.ProjectRoot != "" {
			s.opts.Root = cfg.ProjectRoot
		}
		if cfg.PushCacheSize > 0 {
			s.opts.PushCacheSize = cfg.PushCacheSize
		}
	}
}

// Store owns one manifest. The file is read on the first resolution and kept
// for the lifetime of the Store.
type Store struct {
	opts       Options
	readFile   func(name string) ([]byte, error)
	normalizer normalize.Normalizer
	push       HintProvider

	mu       sync.Mutex
	manifest bundles.Manifest
}

// New creates a Store with default options.
func New(options ...Option) *Store {
	return NewWithOptions(Options{}, options...)
}

// NewWithOptions creates a Store; empty fields of o take their defaults.
func NewWithOptions(o Options, options ...Option) *Store {
	s := &Store{opts: o}
	for _, option := range options {
		option(s)
	}

	if s.opts.Manifest == "" {
		s.opts.Manifest = DefaultManifest
	}
	if s.opts.ServerRoot == "" {
		s.opts.ServerRoot = DefaultServerRoot
	}
	if s.opts.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		s.opts.Root = wd
	}
	if s.opts.PushCacheSize <= 0 {
		s.opts.PushCacheSize = push.DefaultCacheSize
	}

	if s.readFile == nil {
		s.readFile = s.readOSFile
	}
	if s.normalizer == nil {
		s.normalizer = normalize.Fuzzy{}
	}
	if s.push == nil {
		s.push = push.NewProvider(push.Options{
			ServerRoot: s.opts.ServerRoot,
			Root:       s.opts.Root,
			CacheSize:  s.opts.PushCacheSize,
			Normalizer: s.normalizer,
		}, s)
	}
	return s
}

// Options returns the effective options.
func (s *Store) Options() Options {
	return s.opts
}

// Manifest returns the parsed manifest, reading it on first use. A failed
// read is not remembered; the next call reads again.
func (s *Store) Manifest() (bundles.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest != nil {
		return s.manifest, nil
	}

	data, err := s.readFile(s.opts.Manifest)
	if err != nil {
		return nil, &LoadError{Path: s.opts.Manifest, Err: err}
	}
	m, err := bundles.Parse(data, bundles.FormatFor(s.opts.Manifest))
	if err != nil {
		return nil, &LoadError{Path: s.opts.Manifest, Err: err}
	}

	s.manifest = m
	return m, nil
}

// Loaded reports whether the manifest has been read.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manifest != nil
}

// Resolve returns the Route identifier names. Normalizer errors are returned
// unchanged.
func (s *Store) Resolve(identifier string) (*Route, error) {
	m, err := s.Manifest()
	if err != nil {
		return nil, err
	}

	entry, err := s.normalizer.Normalize(identifier, m)
	if err != nil {
		return nil, err
	}

	return newRoute(identifier, entry, s.push.For(identifier), s), nil
}

func (s *Store) readOSFile(name string) ([]byte, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(s.opts.Root, name)
	}
	return os.ReadFile(name)
}

// fsPath turns a manifest location into an fs.FS path.
func fsPath(name string) string {
	p := path.Clean(filepath.ToSlash(name))
	return strings.TrimLeft(p, "/")
}
