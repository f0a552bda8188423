package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"agrisphere/dispatcher"
	"agrisphere/services"
)

// HandleWeatherProxy returns the provider's current weather JSON as-is.
// GET /api/weather?region=
func (h *Handler) HandleWeatherProxy(c *fiber.Ctx) error {
	region := c.Query("region")
	if region == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Region is required")
	}

	raw, err := h.Weather.Raw(c.UserContext(), region)
	if err != nil {
		if errors.Is(err, services.ErrMissingAPIKey) {
			return errorJSON(c, fiber.StatusInternalServerError, "API key not configured")
		}
		h.log().Warn("weather_proxy_failed", zap.String("region", region), zap.Error(err))
		if status := dispatcher.StatusCode(err); status != 0 {
			return errorJSON(c, status, "Failed to fetch weather data")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// HandleCurrentWeather returns the weather cards, or the fallback cards
// when the provider fails.
// GET /api/v1/agri/weather/current?region=
func (h *Handler) HandleCurrentWeather(c *fiber.Ctx) error {
	region := c.Query("region")
	if region == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Region is required")
	}

	view, err := h.Weather.Current(c.UserContext(), region)
	if err != nil {
		h.log().Warn("weather_current_fallback", zap.String("region", region), zap.Error(err))
	}
	return c.JSON(fiber.Map{"success": err == nil, "data": view})
}

// HandleForecast returns the 3-hourly forecast for 1..7 days.
// GET /api/v1/agri/weather/forecast?region=&duration=
func (h *Handler) HandleForecast(c *fiber.Ctx) error {
	region := c.Query("region")
	if region == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Region is required")
	}
	days, ok := parseDuration(c.Query("duration", "1"), 1, services.MaxForecastDays)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "duration must be between 1 and 7")
	}

	series, err := h.Weather.Forecast(c.UserContext(), region, days)
	if err != nil {
		return h.weatherError(c, "weather_forecast_failed", region, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": series})
}

// HandlePastWeather returns one point per day for the last 1..60 days.
// GET /api/v1/agri/weather/past?region=&duration=
func (h *Handler) HandlePastWeather(c *fiber.Ctx) error {
	region := c.Query("region")
	if region == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Region is required")
	}
	raw := c.Query("duration")
	if raw == "" {
		raw = strconv.Itoa(services.DefaultPastDays)
	}
	days, ok := parseDuration(raw, 1, services.MaxPastDays)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "duration must be between 1 and 60")
	}

	series, err := h.Weather.Past(c.UserContext(), region, days)
	if err != nil {
		return h.weatherError(c, "weather_past_failed", region, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": series})
}

// HandleWeatherOverview returns current cards and a forecast in one call.
// GET /api/v1/agri/weather/overview?region=&duration=
func (h *Handler) HandleWeatherOverview(c *fiber.Ctx) error {
	region := c.Query("region")
	if region == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Region is required")
	}
	days, ok := parseDuration(c.Query("duration", "1"), 1, services.MaxForecastDays)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "duration must be between 1 and 7")
	}

	overview, err := h.Weather.Overview(c.UserContext(), region, days)
	if err != nil {
		return h.weatherError(c, "weather_overview_failed", region, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": overview})
}

func (h *Handler) weatherError(c *fiber.Ctx, event, region string, err error) error {
	h.log().Warn(event, zap.String("region", region), zap.Error(err))
	if errors.Is(err, services.ErrMissingAPIKey) {
		return errorJSON(c, fiber.StatusInternalServerError, "API key not configured")
	}
	if dispatcher.StatusCode(err) == fiber.StatusNotFound {
		return errorJSON(c, fiber.StatusNotFound, "Region not found")
	}
	return errorJSON(c, fiber.StatusBadGateway, "Failed to fetch weather data")
}

func parseDuration(raw string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
