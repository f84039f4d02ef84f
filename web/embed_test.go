package web_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlemanifest/web"
)

func TestViewsContainsPage(t *testing.T) {
	data, err := fs.ReadFile(web.Views(), "page.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), "{{ .Styles }}")
	assert.Contains(t, string(data), "{{ .Scripts }}")
}
