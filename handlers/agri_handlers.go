package handlers

import (
	"github.com/gofiber/fiber/v2"

	"agrisphere/models"
	"agrisphere/services"
)

// HandleAssistant answers a text question in one assistant mode.
// POST /api/v1/agri/copilot, /api/v1/agri/crop-gpt, /api/v1/agri/chat
func (h *Handler) HandleAssistant(mode string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AgriRequest
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
		}

		resp, err := h.Assistant.Ask(c.UserContext(), currentUserID(c), mode, req)
		if err != nil {
			if handled, rerr := validationJSON(c, err); handled {
				return rerr
			}
			return errorJSON(c, fiber.StatusInternalServerError, services.AssistantFailureMessage)
		}
		return c.JSON(resp)
	}
}

// HandleVision answers a question about a crop photo sent as a data URL,
// e.g. "data:image/png;base64,...".
// POST /api/v1/agri/vision
func (h *Handler) HandleVision(c *fiber.Ctx) error {
	var req models.AgriRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.Assistant.Vision(c.UserContext(), req)
	if err != nil {
		if handled, rerr := validationJSON(c, err); handled {
			return rerr
		}
		return errorJSON(c, fiber.StatusInternalServerError, services.AssistantFailureMessage)
	}
	return c.JSON(resp)
}

// HandleChatTranscript returns the conversation of a chat session owned by
// the caller. Other users get the same 404 as for an unknown id.
// GET /api/v1/agri/chat/:sessionId
func (h *Handler) HandleChatTranscript(c *fiber.Ctx) error {
	transcript, ok := h.Assistant.Transcript(currentUserID(c), c.Params("sessionId"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Chat session not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": transcript})
}
