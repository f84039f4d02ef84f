package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Manifest  string    `json:"manifest"`
}

// HealthIndexAction reports whether the manifest can be served.
// An unloaded manifest is loaded here so a broken build shows up as degraded.
func (h *Handlers) HealthIndexAction(c *fiber.Ctx) error {
	health := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Manifest:  "loaded",
	}

	if _, err := h.Store.Manifest(); err != nil {
		h.Logger.Error("Manifest unavailable", slog.Any("error", err))
		health.Status = "degraded"
		health.Manifest = "error"
		return c.Status(fiber.StatusServiceUnavailable).JSON(health)
	}

	return c.JSON(health)
}
