package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"agrisphere/models"
	"agrisphere/utils"
)

// HandlePredict forwards the yield prediction form to the model service.
// POST /api/v1/predict
func (h *Handler) HandlePredict(c *fiber.Ctx) error {
	var req models.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	userID := currentUserID(c)
	view, err := h.Prediction.Predict(c.UserContext(), userID, req)
	if err != nil {
		if handled, rerr := validationJSON(c, err); handled {
			return rerr
		}
		h.log().Error("prediction_failed",
			zap.String("user_id", userID),
			zap.String("crop", utils.Truncate(req.Crop, 64)),
			zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(view)
	}
	return c.JSON(view)
}
