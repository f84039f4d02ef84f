package manifest

import (
	"html/template"
	"strings"

	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/push"
)

// renderers holds the markup template of every kind in bundles.Declared.
var renderers = map[bundles.Kind]func(publicPath string) string{
	bundles.KindStyle: func(p string) string {
		return `<link rel="stylesheet" href="` + p + `">`
	},
	bundles.KindScript: func(p string) string {
		return `<script src="` + p + `" async></script>`
	},
}

// Route is the ordered asset list of one resolved route. It is not modified
// after construction.
type Route struct {
	identifier string
	assets     []bundles.Asset
	push       *push.Hints
	store      *Store
}

// newRoute orders entry so that every non-script precedes every script, each
// group keeping manifest order.
func newRoute(identifier string, entry bundles.Entry, hints *push.Hints, store *Store) *Route {
	assets := make([]bundles.Asset, 0, len(entry))
	var scripts []bundles.Asset
	for _, asset := range entry {
		if asset.Kind == bundles.KindScript {
			scripts = append(scripts, asset)
			continue
		}
		assets = append(assets, asset)
	}
	assets = append(assets, scripts...)

	return &Route{
		identifier: identifier,
		assets:     assets,
		push:       hints,
		store:      store,
	}
}

// Identifier returns the identifier the route was resolved from.
func (r *Route) Identifier() string {
	return r.identifier
}

// Assets returns a copy of the ordered assets.
func (r *Route) Assets() []bundles.Asset {
	out := make([]bundles.Asset, len(r.assets))
	copy(out, r.assets)
	return out
}

// Filter returns the assets of kind k in route order.
func (r *Route) Filter(k bundles.Kind) []bundles.Asset {
	var out []bundles.Asset
	for _, asset := range r.assets {
		if asset.Kind == k {
			out = append(out, asset)
		}
	}
	return out
}

// Styles returns the style assets.
func (r *Route) Styles() []bundles.Asset {
	return r.Filter(bundles.KindStyle)
}

// Scripts returns the script assets.
func (r *Route) Scripts() []bundles.Asset {
	return r.Filter(bundles.KindScript)
}

// Push returns the preload hints computed for the route's identifier.
func (r *Route) Push() *push.Hints {
	return r.push
}

// PublicPath returns the URL path an asset is served under.
func (r *Route) PublicPath(asset bundles.Asset) string {
	return bundles.PublicPath(r.store.opts.ServerRoot, asset.Path)
}

// HTML renders assets in the given order. An asset of an unsupported kind fails
// the whole call with an *UnsupportedKindError.
func (r *Route) HTML(assets []bundles.Asset) (string, error) {
	var b strings.Builder
	for _, asset := range assets {
		render, ok := renderers[asset.Kind]
		if !ok {
			return "", &UnsupportedKindError{Kind: asset.Kind, Path: asset.Path}
		}
		b.WriteString(render(r.PublicPath(asset)))
	}
	return b.String(), nil
}

// TemplateHTML is HTML typed for html/template. Asset paths come from the build
// and are emitted unescaped.
func (r *Route) TemplateHTML(assets []bundles.Asset) (template.HTML, error) {
	out, err := r.HTML(assets)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}
