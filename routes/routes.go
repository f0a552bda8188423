package routes

import (
	"github.com/gofiber/fiber/v2"

	"agrisphere/handlers"
	"agrisphere/middleware"
	"agrisphere/services"
	"agrisphere/utils"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	// Raw provider proxy used by the weather page.
	app.Get("/api/weather", h.HandleWeatherProxy)

	api := app.Group("/api/v1")

	// --- System Routes ---
	api.Get("/health", h.HandleHealth)
	api.Get("/version", h.HandleVersion)
	api.Get("/db", h.HandleDBPing)

	// --- User Routes ---
	user := api.Group("/user")
	user.Post("/register", h.HandleRegister)
	user.Post("/login", h.HandleLogin)
	user.Post("/refresh", h.HandleRefresh)
	user.Post("/logout", h.HandleLogout)
	user.Get("/me", middleware.JWTMiddleware, h.HandleMe)
	user.Get("/me/predictions", middleware.JWTMiddleware, middleware.FarmerRequired, h.HandlePredictionCount)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.JWTMiddleware, middleware.AdminRequired)
	admin.Get("/users/:userId/predictions", h.HandlePredictionCount)

	signedIn := []fiber.Handler{middleware.JWTMiddleware, middleware.CheckRole(utils.RoleFarmer, utils.RoleAdmin)}
	with := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, signedIn...), handler)
	}

	// --- Prediction ---
	api.Post("/predict", with(h.HandlePredict)...)

	// --- Agriculture Routes ---
	agri := api.Group("/agri")
	agri.Get("/weather/current", h.HandleCurrentWeather)
	agri.Get("/weather/forecast", h.HandleForecast)
	agri.Get("/weather/past", h.HandlePastWeather)
	agri.Get("/weather/overview", h.HandleWeatherOverview)

	agri.Post("/copilot", with(h.HandleAssistant(services.ModeCopilot))...)
	agri.Post("/crop-gpt", with(h.HandleAssistant(services.ModeCropGPT))...)
	agri.Post("/chat", with(h.HandleAssistant(services.ModeChat))...)
	agri.Post("/vision", with(h.HandleVision)...)
	agri.Get("/chat/:sessionId", with(h.HandleChatTranscript)...)

	// --- Market Routes ---
	api.Get("/gemini/commodity-market-data", h.HandleCommodityMarketData)
}
