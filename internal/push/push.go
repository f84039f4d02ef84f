// Package push computes preload hints for a route: the assets a server can
// announce with a Link header (or push) before the page markup references them.
package push

import (
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/normalize"
)

// DefaultCacheSize is the number of identifiers whose hints are kept.
const DefaultCacheSize = 256

// Source gives the provider access to the loaded manifest.
type Source interface {
	Manifest() (bundles.Manifest, error)
}

// Options configure a Provider. They mirror the store options.
type Options struct {
	ServerRoot string
	Root       string
	CacheSize  int
	Normalizer normalize.Normalizer
}

// Link is one preload hint.
type Link struct {
	URL  string       `json:"url"`
	As   bundles.Kind `json:"as"`
	File string       `json:"file"`
}

// Hints are the preload hints of one identifier.
type Hints struct {
	Identifier string `json:"identifier"`
	Links      []Link `json:"links"`
}

// Header renders the hints as an HTTP Link header value.
func (h *Hints) Header() string {
	if h == nil || len(h.Links) == 0 {
		return ""
	}
	parts := make([]string, 0, len(h.Links))
	for _, l := range h.Links {
		parts = append(parts, fmt.Sprintf("<%s>; rel=preload; as=%s", l.URL, l.As))
	}
	return strings.Join(parts, ", ")
}

// Provider computes hints per identifier and caches them.
type Provider struct {
	opts   Options
	source Source
	cache  *lru.Cache[string, *Hints]
}

// NewProvider creates a Provider reading the manifest from source.
func NewProvider(opts Options, source Source) *Provider {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Normalizer == nil {
		opts.Normalizer = normalize.Fuzzy{}
	}
	// lru.New only fails for non-positive sizes
	cache, _ := lru.New[string, *Hints](opts.CacheSize)
	return &Provider{opts: opts, source: source, cache: cache}
}

// For returns the hints of identifier. Lookup failures give empty hints; the
// store reports them on its own path.
func (p *Provider) For(identifier string) *Hints {
	if h, ok := p.cache.Get(identifier); ok {
		return h
	}

	hints := &Hints{Identifier: identifier}
	m, err := p.source.Manifest()
	if err != nil {
		return hints
	}
	entry, err := p.opts.Normalizer.Normalize(identifier, m)
	if err != nil {
		return hints
	}
	for _, asset := range entry {
		if !asset.Kind.Supported() {
			continue
		}
		hints.Links = append(hints.Links, Link{
			URL:  bundles.PublicPath(p.opts.ServerRoot, asset.Path),
			As:   asset.Kind,
			File: filepath.Join(p.opts.Root, filepath.FromSlash(asset.Path)),
		})
	}

	p.cache.Add(identifier, hints)
	return hints
}

// Purge drops all cached hints.
func (p *Provider) Purge() {
	p.cache.Purge()
}
