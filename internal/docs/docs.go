// Package docs turns the project readme into a page of the documentation site.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Options for Build. Empty fields take the defaults below.
type Options struct {
	Readme  string
	Out     string
	Page    string
	Parent  string
	Heading string
}

// Defaults
const (
	DefaultReadme  = "readme.md"
	DefaultOut     = "docs/bundle-manifest.md"
	DefaultPage    = "bundle-manifest"
	DefaultParent  = "StealJS.ecosystem"
	DefaultHeading = "bundle-manifest"
)

func (o Options) withDefaults() Options {
	if o.Readme == "" {
		o.Readme = DefaultReadme
	}
	if o.Out == "" {
		o.Out = DefaultOut
	}
	if o.Page == "" {
		o.Page = DefaultPage
	}
	if o.Parent == "" {
		o.Parent = DefaultParent
	}
	if o.Heading == "" {
		o.Heading = DefaultHeading
	}
	return o
}

// Render removes the first "# <heading>" occurrence from readme and prepends
// the page frontmatter.
func Render(readme string, opts Options) string {
	opts = opts.withDefaults()
	heading := regexp.MustCompile(`# ` + regexp.QuoteMeta(opts.Heading))

	removed := false
	body := heading.ReplaceAllStringFunc(readme, func(match string) string {
		if removed {
			return match
		}
		removed = true
		return ""
	})

	frontmatter := strings.TrimSpace(fmt.Sprintf("@page %s\n@parent %s", opts.Page, opts.Parent))
	return frontmatter + " " + body
}

// Build reads the readme, renders it, and writes the docs page.
func Build(opts Options) (string, error) {
	opts = opts.withDefaults()

	readme, err := os.ReadFile(opts.Readme)
	if err != nil {
		return "", fmt.Errorf("read readme: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Out), 0o755); err != nil {
		return "", fmt.Errorf("create docs directory: %w", err)
	}
	if err := os.WriteFile(opts.Out, []byte(Render(string(readme), opts)), 0o644); err != nil {
		return "", fmt.Errorf("write docs page: %w", err)
	}
	return opts.Out, nil
}
