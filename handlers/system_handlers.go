package handlers

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HandleHealth is the liveness check.
// GET /api/v1/health
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "status": "ok"})
}

// HandleVersion reports the module versions the binary was built with.
// GET /api/v1/version
func (h *Handler) HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errorJSON(c, fiber.StatusInternalServerError, "no build information available")
	}

	deps := make(map[string]string, len(info.Deps))
	for _, dep := range info.Deps {
		deps[dep.Path] = dep.Version
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"goVersion": info.GoVersion,
		"module":    info.Main.Path,
		"version":   info.Main.Version,
		"deps":      deps,
	})
}

// HandleDBPing checks the store connection.
// GET /api/v1/db
func (h *Handler) HandleDBPing(c *fiber.Ctx) error {
	if h.Store == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Database not configured")
	}
	if err := h.Store.Ping(c.UserContext()); err != nil {
		h.log().Error("db_ping_failed", zap.Error(err))
		return errorJSON(c, fiber.StatusServiceUnavailable, "Database ping failed")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Database ping successful!"})
}
