package http

import (
	"html/template"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"bundlemanifest/internal/manifest"
)

// PageShowAction renders a full HTML page for a route: stylesheets in the head,
// scripts at the end of the body, preload hints in the Link header.
func (h *Handlers) PageShowAction(c *fiber.Ctx) error {
	route, err := h.resolve(c)
	if err != nil {
		return h.respondError(c, err)
	}

	styles, scripts, err := renderPage(route)
	renderTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return h.respondError(c, err)
	}

	skipped := len(route.Assets()) - len(route.Styles()) - len(route.Scripts())
	if skipped > 0 {
		h.Logger.Warn("Page omits assets without a render rule",
			slog.String("route", route.Identifier()),
			slog.Int("skipped", skipped))
	}

	if link := route.Push().Header(); link != "" {
		c.Set(fiber.HeaderLink, link)
	}

	return c.Render("page", fiber.Map{
		"Title":   route.Identifier(),
		"Route":   route.Identifier(),
		"Styles":  styles,
		"Scripts": scripts,
	})
}

func renderPage(route *manifest.Route) (styles, scripts template.HTML, err error) {
	if styles, err = route.TemplateHTML(route.Styles()); err != nil {
		return "", "", err
	}
	if scripts, err = route.TemplateHTML(route.Scripts()); err != nil {
		return "", "", err
	}
	return styles, scripts, nil
}
