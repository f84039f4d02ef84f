// Package normalize matches route identifiers against manifest keys.
//
// Manifest keys produced by the build look like "app@1.0.0#index": a package
// name, its version and the module of the entry point. Callers usually only
// know the short form ("index", "app/index"), so matching is fuzzy.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"bundlemanifest/internal/bundles"
)

// ErrNoMatch is returned when no manifest key matches an identifier.
var ErrNoMatch = errors.New("no manifest entry matches identifier")

// Normalizer resolves an identifier to the entry of one route.
type Normalizer interface {
	Normalize(identifier string, m bundles.Manifest) (bundles.Entry, error)
}

// Func adapts a plain function to Normalizer.
type Func func(identifier string, m bundles.Manifest) (bundles.Entry, error)

// Normalize calls f.
func (f Func) Normalize(identifier string, m bundles.Manifest) (bundles.Entry, error) {
	return f(identifier, m)
}

// Fuzzy is the default Normalizer.
type Fuzzy struct{}

// Normalize returns the entry whose key matches identifier exactly, or else the
// entry of the smallest key whose parsed form matches it.
func (Fuzzy) Normalize(identifier string, m bundles.Manifest) (bundles.Entry, error) {
	key, ok := Match(identifier, m)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, identifier)
	}
	return m[key], nil
}

// Match returns the manifest key identifier resolves to.
func Match(identifier string, m bundles.Manifest) (string, bool) {
	if identifier == "" {
		return "", false
	}
	if _, ok := m[identifier]; ok {
		return identifier, true
	}

	want := clean(identifier)
	for _, key := range m.Keys() {
		if matches(ParseKey(key), want) {
			return key, true
		}
	}
	return "", false
}

// Key is a parsed manifest key.
type Key struct {
	Package string
	Version string
	Module  string
}

// ParseKey splits "package@version#module". Missing parts are left empty; a key
// without '#' is treated as a bare module name.
func ParseKey(key string) Key {
	var k Key
	pkg, module, found := strings.Cut(key, "#")
	if !found {
		k.Module = key
		return k
	}
	k.Module = module
	// scoped packages start with '@'
	if at := strings.LastIndex(pkg, "@"); at > 0 {
		k.Package, k.Version = pkg[:at], pkg[at+1:]
	} else {
		k.Package = pkg
	}
	return k
}

func matches(k Key, want string) bool {
	module := clean(k.Module)
	if module == "" {
		return false
	}
	switch want {
	case module:
		return true
	case k.Package + "/" + module, k.Package + "#" + module:
		return k.Package != ""
	}
	return false
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "./")
	s = strings.TrimPrefix(s, "~/")
	return strings.TrimSuffix(s, ".js")
}
