// Package http exposes route resolution and rendering over HTTP.
package http

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberhtml "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/config"
	"bundlemanifest/internal/http/middleware"
	"bundlemanifest/internal/manifest"
	"bundlemanifest/web"
)

// NewApp builds the fiber application: API, pages, metrics, and the built
// assets served from the project root under the server root prefix. Only
// files listed in the manifest are served.
func NewApp(cfg *config.Config, store *manifest.Store, logger *slog.Logger) *fiber.App {
	engine := fiberhtml.NewFileSystem(nethttp.FS(web.Views()), ".html")

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		Views:                 engine,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLogger(logger))

	MountRoutes(app, &Handlers{Store: store, Logger: logger})

	if serverRoot := store.Options().ServerRoot; cfg.ProjectRoot != "" && strings.HasPrefix(serverRoot, "/") {
		app.Static(serverRoot, cfg.ProjectRoot, fiber.Static{
			Browse: false,
			Next:   skipUnlistedAssets(store),
		})
	}

	return app
}

// MountRoutes registers the handler routes.
func MountRoutes(app *fiber.App, h *Handlers) {
	app.Get("/healthz", h.HealthIndexAction)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/routes/:route", h.RouteShowAction)
	api.Get("/routes/:route/html", h.RouteHTMLAction)

	app.Get("/pages/:route", h.PageShowAction)
}

// skipUnlistedAssets makes the static handler pass on any request whose path is
// not the public path of a manifest asset.
func skipUnlistedAssets(store *manifest.Store) func(c *fiber.Ctx) bool {
	return func(c *fiber.Ctx) bool {
		m, err := store.Manifest()
		if err != nil {
			return true
		}
		serverRoot := store.Options().ServerRoot
		for _, entry := range m {
			for _, asset := range entry {
				if bundles.PublicPath(serverRoot, asset.Path) == c.Path() {
					return false
				}
			}
		}
		return true
	}
}
