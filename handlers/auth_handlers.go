package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"agrisphere/models"
	"agrisphere/services"
)

// HandleRegister creates a farmer or admin account.
// POST /api/v1/user/register
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	user, err := h.Auth.Register(c.UserContext(), req)
	if err != nil {
		if handled, rerr := validationJSON(c, err); handled {
			return rerr
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusConflict, "Email is already registered")
		}
		h.log().Error("register_failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": user})
}

// HandleLogin authenticates a user and returns a token pair.
// POST /api/v1/user/login
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	user, pair, err := h.Auth.Login(c.UserContext(), req)
	if err != nil {
		if handled, rerr := validationJSON(c, err); handled {
			return rerr
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		h.log().Error("login_failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not log in")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    pair.ExpiresIn,
		"user":         user,
	})
}

// HandleRefresh exchanges a refresh token for a new pair.
// POST /api/v1/user/refresh
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	pair, err := h.Auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
		}
		h.log().Error("refresh_failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not refresh token")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    pair.ExpiresIn,
	})
}

// HandleLogout revokes a refresh token.
// POST /api/v1/user/logout
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.Auth.Logout(c.UserContext(), req.RefreshToken); err != nil {
		if handled, rerr := validationJSON(c, err); handled {
			return rerr
		}
		h.log().Error("logout_failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not log out")
	}
	return c.JSON(fiber.Map{"success": true})
}
