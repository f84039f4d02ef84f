package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/normalize"
)

func testManifest() bundles.Manifest {
	return bundles.Manifest{
		"app@1.0.0#index": bundles.Entry{
			{Path: "dist/bundles/app/index.js", Kind: bundles.KindScript},
		},
		"app@1.0.0#pages/about": bundles.Entry{
			{Path: "dist/bundles/app/pages/about.js", Kind: bundles.KindScript},
		},
		"other@2.0.0#index": bundles.Entry{
			{Path: "dist/bundles/other/index.js", Kind: bundles.KindScript},
		},
		"@scope/ui@0.1.0#widget": bundles.Entry{
			{Path: "dist/bundles/ui/widget.js", Kind: bundles.KindScript},
		},
		"plain": bundles.Entry{
			{Path: "dist/plain.css", Kind: bundles.KindStyle},
		},
	}
}

func TestMatch(t *testing.T) {
	m := testManifest()

	testCases := []struct {
		identifier string
		want       string
		found      bool
	}{
		{identifier: "app@1.0.0#index", want: "app@1.0.0#index", found: true},
		{identifier: "index", want: "app@1.0.0#index", found: true},
		{identifier: "./index.js", want: "app@1.0.0#index", found: true},
		{identifier: "~/index", want: "app@1.0.0#index", found: true},
		{identifier: "other/index", want: "other@2.0.0#index", found: true},
		{identifier: "other#index", want: "other@2.0.0#index", found: true},
		{identifier: "pages/about", want: "app@1.0.0#pages/about", found: true},
		{identifier: "app/pages/about", want: "app@1.0.0#pages/about", found: true},
		{identifier: "@scope/ui/widget", want: "@scope/ui@0.1.0#widget", found: true},
		{identifier: "plain", want: "plain", found: true},
		{identifier: "missing", found: false},
		{identifier: "", found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.identifier, func(t *testing.T) {
			key, ok := normalize.Match(tc.identifier, m)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, key)
		})
	}
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, normalize.Key{Package: "app", Version: "1.0.0", Module: "index"}, normalize.ParseKey("app@1.0.0#index"))
	assert.Equal(t, normalize.Key{Package: "@scope/ui", Version: "0.1.0", Module: "widget"}, normalize.ParseKey("@scope/ui@0.1.0#widget"))
	assert.Equal(t, normalize.Key{Package: "app", Module: "index"}, normalize.ParseKey("app#index"))
	assert.Equal(t, normalize.Key{Module: "index"}, normalize.ParseKey("index"))
}

func TestFuzzyNormalize(t *testing.T) {
	entry, err := normalize.Fuzzy{}.Normalize("index", testManifest())
	require.NoError(t, err)
	require.Len(t, entry, 1)
	assert.Equal(t, "dist/bundles/app/index.js", entry[0].Path)

	_, err = normalize.Fuzzy{}.Normalize("nope", testManifest())
	assert.ErrorIs(t, err, normalize.ErrNoMatch)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestFuncAdapter(t *testing.T) {
	var called string
	n := normalize.Func(func(identifier string, m bundles.Manifest) (bundles.Entry, error) {
		called = identifier
		return nil, nil
	})

	entry, err := n.Normalize("anything", nil)
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Equal(t, "anything", called)
}
