package manifest

import (
	"errors"
	"fmt"

	"bundlemanifest/internal/bundles"
)

var (
	// ErrManifestLoad matches every *LoadError.
	ErrManifestLoad = errors.New("bundle manifest could not be loaded")
	// ErrUnsupportedKind matches every *UnsupportedKindError.
	ErrUnsupportedKind = errors.New("unsupported asset kind")
)

// LoadError reports a manifest file that is missing or does not parse.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load bundle manifest %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrManifestLoad, e.Err}
}

// UnsupportedKindError reports an asset whose kind has no rendering rule.
type UnsupportedKindError struct {
	Kind bundles.Kind
	Path string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("creating html for %q is not currently supported (asset %s)", e.Kind, e.Path)
}

func (e *UnsupportedKindError) Is(target error) bool {
	return target == ErrUnsupportedKind
}
