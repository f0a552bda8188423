package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"agrisphere/database"
)

// HandleMe returns the signed-in user's account.
// GET /api/v1/user/me
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	user, err := h.Auth.User(c.UserContext(), currentUserID(c))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		h.log().Error("get_user_failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not load user")
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// HandlePredictionCount reports how many predictions a user has run. Admins
// pass the user in the path; farmers get their own count.
// GET /api/v1/user/me/predictions
// GET /api/v1/admin/users/:userId/predictions
func (h *Handler) HandlePredictionCount(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		userID = currentUserID(c)
	}

	count, err := h.Prediction.Count(c.UserContext(), userID)
	if err != nil {
		h.log().Error("count_predictions_failed", zap.String("user_id", userID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not count predictions")
	}
	return c.JSON(fiber.Map{"success": true, "userId": userID, "count": count})
}
