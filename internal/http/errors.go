package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"bundlemanifest/internal/manifest"
	"bundlemanifest/internal/normalize"
)

const (
	errRouteNotFound       = "Route not found in bundle manifest"
	errManifestUnavailable = "Bundle manifest unavailable"
	errUnsupportedKind     = "Asset kind cannot be rendered"
	errInternal            = "Internal server error"
)

// handleError maps resolution and rendering failures to HTTP responses.
func (h *Handlers) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, normalize.ErrNoMatch):
		h.Logger.Debug("Route not found", slog.String("path", c.Path()), slog.Any("error", err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": errRouteNotFound,
			"code":  "ROUTE_NOT_FOUND",
		})
	case errors.Is(err, manifest.ErrManifestLoad):
		h.Logger.Error("Failed to load bundle manifest", slog.Any("error", err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": errManifestUnavailable,
			"code":  "MANIFEST_UNAVAILABLE",
		})
	case errors.Is(err, manifest.ErrUnsupportedKind):
		h.Logger.Warn("Unsupported asset kind", slog.Any("error", err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   errUnsupportedKind,
			"code":    "UNSUPPORTED_ASSET_KIND",
			"details": err.Error(),
		})
	default:
		h.Logger.Error("Request failed", slog.String("path", c.Path()), slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errInternal,
			"code":  "INTERNAL_ERROR",
		})
	}
}
