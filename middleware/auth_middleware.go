package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"agrisphere/config"
	"agrisphere/services"
	"agrisphere/utils"
)

// JWTMiddleware validates the JWT token provided in the Authorization header.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Missing or malformed JWT"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Missing or malformed JWT"})
	}

	claims, err := services.ParseAccessToken(parts[1], []byte(config.AppConfig.JWTSecret))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid or expired JWT"})
	}

	c.Locals("userID", claims.UserID)
	c.Locals("userRole", claims.Role)

	return c.Next()
}

// AdminRequired is a middleware function that checks if the user has an 'admin' role.
func AdminRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || role != utils.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Admin access required"})
	}
	return c.Next()
}

// FarmerRequired is a middleware function that checks if the user has a 'farmer' role.
func FarmerRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || role != utils.RoleFarmer {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Farmer access required"})
	}
	return c.Next()
}
