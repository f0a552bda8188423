package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"agrisphere/database"
	"agrisphere/services"
)

// Handler carries the services the HTTP handlers call into.
type Handler struct {
	Auth       *services.AuthService
	Weather    *services.WeatherService
	Prediction *services.PredictionService
	Assistant  *services.AssistantService
	Market     *services.MarketService
	Store      database.Store
	Logger     *zap.Logger
}

func (h *Handler) log() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

// validationJSON answers 400 for a ValidationError and reports whether it did.
func validationJSON(c *fiber.Ctx, err error) (bool, error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return true, errorJSON(c, fiber.StatusBadRequest, verr.Message)
	}
	return false, nil
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}
