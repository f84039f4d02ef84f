// Package testsupport holds manifest fixtures shared by the package tests.
package testsupport

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
)

// ManifestPath is where fixtures place the manifest, matching the default.
const ManifestPath = "dist/bundles.json"

// AppManifest is a route with two styles and two scripts listed scripts first.
const AppManifest = `{
	"app@1.0.0#index": {
		"dist/bundles/app/app.js": {"type": "script", "weight": 2},
		"dist/bundles/app/puppies.js": {"type": "script", "weight": 2},
		"dist/bundles/app/app.css": {"type": "style", "weight": 1},
		"dist/bundles/app/index.css": {"type": "style", "weight": 1}
	},
	"app@1.0.0#fonts": {
		"dist/bundles/app/fonts.css": {"type": "style", "weight": 1},
		"dist/bundles/app/fonts.woff2": {"type": "font", "weight": 1}
	},
	"app@1.0.0#empty": {}
}`

// ManifestFS returns a filesystem holding data at ManifestPath.
func ManifestFS(data string) fstest.MapFS {
	return fstest.MapFS{
		ManifestPath: &fstest.MapFile{Data: []byte(data)},
	}
}

// CountingFS counts Open calls per name.
type CountingFS struct {
	fs.FS

	mu    sync.Mutex
	opens map[string]int
}

// NewCountingFS wraps fsys.
func NewCountingFS(fsys fs.FS) *CountingFS {
	return &CountingFS{FS: fsys, opens: make(map[string]int)}
}

// Open counts the call and delegates.
func (c *CountingFS) Open(name string) (fs.File, error) {
	c.mu.Lock()
	c.opens[name]++
	c.mu.Unlock()
	return c.FS.Open(name)
}

// Opens returns how often name was opened.
func (c *CountingFS) Opens(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens[name]
}

// WriteManifest writes data to dir/name, creating directories, and returns the path.
func WriteManifest(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("create manifest dir: %v", err)
	}
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return p
}
