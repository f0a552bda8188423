package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"agrisphere/models"
)

// HandleCommodityMarketData returns mandi prices for a commodity, state and
// date range.
// GET /api/v1/gemini/commodity-market-data
func (h *Handler) HandleCommodityMarketData(c *fiber.Ctx) error {
	var q models.MarketPriceQuery
	if err := c.QueryParser(&q); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	rows, pagination, err := h.Market.Prices(c.UserContext(), q)
	if err != nil {
		if handled, rerr := validationJSON(c, err); handled {
			return rerr
		}
		h.log().Error("market_data_failed",
			zap.String("commodity", q.Commodity),
			zap.String("state", q.State),
			zap.Error(err),
		)
		return errorJSON(c, fiber.StatusBadGateway, "Error fetching market prices")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       rows,
		"pagination": pagination,
	})
}
