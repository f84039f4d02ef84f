package app_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlemanifest/app"
)

func TestPublicAPIRendersRoute(t *testing.T) {
	fsys := fstest.MapFS{
		"dist/bundles.json": &fstest.MapFile{Data: []byte(`{
			"site@2.0.0#home": {
				"dist/bundles/site/home.js": {"type": "script", "weight": 2},
				"dist/bundles/site/home.css": {"type": "style", "weight": 1}
			}
		}`)},
	}

	store := app.NewWithOptions(app.Options{ServerRoot: "/static/"}, app.WithFS(fsys))
	route, err := store.Resolve("home")
	require.NoError(t, err)

	html, err := route.HTML(route.Assets())
	require.NoError(t, err)
	assert.Equal(t,
		`<link rel="stylesheet" href="/static/dist/bundles/site/home.css"><script src="/static/dist/bundles/site/home.js" async></script>`,
		html)

	_, err = route.HTML([]app.Asset{{Path: "x.png", Kind: "image"}})
	assert.ErrorIs(t, err, app.ErrUnsupportedKind)

	_, err = store.Resolve("away")
	assert.ErrorIs(t, err, app.ErrNoMatch)
}

func TestPublicAPIDefaults(t *testing.T) {
	assert.Equal(t, "dist/bundles.json", app.New().Options().Manifest)
	assert.Equal(t, "/", app.NewWithOptions(app.Options{}).Options().ServerRoot)
}
