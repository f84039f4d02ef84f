package http

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/manifest"
	"bundlemanifest/internal/push"
)

// Handlers serve resolution results of one Store.
type Handlers struct {
	Store  *manifest.Store
	Logger *slog.Logger
}

// RouteResponse is the JSON form of a resolved route.
type RouteResponse struct {
	Route  string          `json:"route"`
	Assets []bundles.Asset `json:"assets"`
	Push   []push.Link     `json:"push"`
}

// resolve resolves the :route parameter, which may be URL-escaped.
func (h *Handlers) resolve(c *fiber.Ctx) (*manifest.Route, error) {
	identifier, err := url.PathUnescape(c.Params("route"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid route identifier")
	}

	start := time.Now()
	route, err := h.Store.Resolve(identifier)
	resolveDuration.Observe(time.Since(start).Seconds())
	resolveTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}

	h.Logger.Debug("Resolved route",
		slog.String("route", identifier),
		slog.Int("assets", len(route.Assets())))
	return route, nil
}

// RouteShowAction returns the ordered assets and preload hints of a route.
func (h *Handlers) RouteShowAction(c *fiber.Ctx) error {
	route, err := h.resolve(c)
	if err != nil {
		return h.respondError(c, err)
	}

	resp := RouteResponse{
		Route:  route.Identifier(),
		Assets: route.Assets(),
		Push:   []push.Link{},
	}
	if hints := route.Push(); hints != nil && len(hints.Links) > 0 {
		resp.Push = hints.Links
	}
	return c.JSON(resp)
}

// RouteHTMLAction renders the markup of a route, optionally limited to one kind
// with ?kind=style or ?kind=script.
func (h *Handlers) RouteHTMLAction(c *fiber.Ctx) error {
	kind := bundles.Kind(c.Query("kind"))
	if kind != "" && !kind.Supported() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown asset kind: " + string(kind),
			"code":  "INVALID_KIND",
		})
	}

	route, err := h.resolve(c)
	if err != nil {
		return h.respondError(c, err)
	}

	assets := route.Assets()
	if kind != "" {
		assets = route.Filter(kind)
	}

	out, err := route.HTML(assets)
	renderTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return h.respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(out)
}

// respondError passes fiber errors through and maps the rest.
func (h *Handlers) respondError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  "BAD_REQUEST",
		})
	}
	return h.handleError(c, err)
}
