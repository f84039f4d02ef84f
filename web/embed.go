// Package web provides the embedded page templates served by the HTTP layer.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views/*.html
var viewsFS embed.FS

// Views returns the page templates with the views/ prefix stripped.
func Views() fs.FS {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return sub
}
