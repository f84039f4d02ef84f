// Package bundles holds the data model of a bundle manifest: the build-generated
// mapping from route keys to the assets each route needs.
package bundles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind classifies an asset. The set is open: manifests may carry kinds that have
// no rendering rule, and those survive decoding untouched.
type Kind string

// Declared kinds
const (
	KindStyle  Kind = "style"
	KindScript Kind = "script"
)

// Declared lists every kind that has a rendering rule.
var Declared = []Kind{KindStyle, KindScript}

// Supported reports whether assets of kind k can be rendered.
func (k Kind) Supported() bool {
	for _, d := range Declared {
		if k == d {
			return true
		}
	}
	return false
}

// Asset is one manifest entry of a route. Path doubles as the entry's key.
// Weight is carried for consumers but plays no part in ordering.
type Asset struct {
	Path   string  `json:"path"`
	Kind   Kind    `json:"type"`
	Weight float64 `json:"weight"`
}

// assetFields is the on-disk shape of an asset value; the path lives in the key.
type assetFields struct {
	Type   Kind    `json:"type" yaml:"type"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Entry is the ordered list of assets of one route, in document order.
type Entry []Asset

// UnmarshalJSON decodes an object of path -> {type, weight} keeping key order.
func (e *Entry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("bundles: route entry must be an object, got %v", tok)
	}

	var assets Entry
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("bundles: unexpected token %v", tok)
		}
		var fields assetFields
		if err := dec.Decode(&fields); err != nil {
			return fmt.Errorf("bundles: asset %q: %w", key, err)
		}
		assets.add(seen, key, fields)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*e = assets
	return nil
}

// UnmarshalYAML decodes a mapping of path -> {type, weight} keeping key order.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*e = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("bundles: route entry must be a mapping (line %d)", value.Line)
	}

	var assets Entry
	seen := make(map[string]int)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		var fields assetFields
		if err := value.Content[i+1].Decode(&fields); err != nil {
			return fmt.Errorf("bundles: asset %q: %w", key, err)
		}
		assets.add(seen, key, fields)
	}

	*e = assets
	return nil
}

// add appends an asset. A repeated path keeps its first position and takes the
// last value, the way JSON.parse treats duplicate keys.
func (e *Entry) add(seen map[string]int, key string, fields assetFields) {
	asset := Asset{Path: key, Kind: fields.Type, Weight: fields.Weight}
	if i, dup := seen[key]; dup {
		(*e)[i] = asset
		return
	}
	seen[key] = len(*e)
	*e = append(*e, asset)
}

// PublicPath joins a server root prefix and a relative asset path with exactly
// one '/' between them. The prefix may be a full URL.
func PublicPath(prefix, assetPath string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(assetPath, "/")
}

// Manifest maps route keys (e.g. "app@1.0.0#index") to their entries.
type Manifest map[string]Entry

// Keys returns the route keys sorted lexicographically.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Format is the serialization of a manifest file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file name; anything but .yml/.yaml is JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes manifest data in the given format.
func Parse(data []byte, format Format) (Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("bundles: parse yaml manifest: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("bundles: parse json manifest: %w", err)
		}
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}
