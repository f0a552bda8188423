package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"go.uber.org/zap"

	"agrisphere/models"
	"agrisphere/utils"
)

// Assistant modes, one per /api/v1/agri endpoint.
const (
	ModeCopilot = "copilot"
	ModeCropGPT = "crop-gpt"
	ModeChat    = "chat"
	ModeVision  = "vision"
)

// AssistantFailureMessage is shown when the model could not answer.
const AssistantFailureMessage = "Sorry, I couldn't process your request right now. Please try again later."

const logMessageLimit = 200

var systemPrompts = map[string]string{
	ModeCopilot: "You are AgriSphere Copilot, a farming assistant for Indian agriculture. " +
		"Give short, practical, step-by-step advice on crops, soil, irrigation, pests and weather. " +
		"If a question is not about agriculture, say so politely.",
	ModeCropGPT: "You are CropGPT, an agronomy expert. Answer questions about crop selection, " +
		"sowing seasons, fertilizer and pesticide use, and expected yields. " +
		"Quote quantities per hectare where it helps and keep answers concise.",
	ModeChat: "You are the AgriSphere AI assistant. Hold a friendly conversation about crop " +
		"prediction, weather, soil and farming. Use the earlier turns of the conversation for context.",
	ModeVision: "You are a plant pathologist. Look at the photo of the crop or leaf, name the most " +
		"likely disease, pest or deficiency, and suggest treatment and prevention steps.",
}

// AssistantService answers the agriculture assistant endpoints.
type AssistantService struct {
	Generator Generator
	Chats     *ChatStore
	Logger    *zap.Logger
}

func (s *AssistantService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// Ask answers a text question in the given mode for userID. Chat mode reads
// and extends the session transcript; a missing, expired or foreign session
// id starts a new session. Model failures are reported in the response,
// never as an error; err is only set for invalid input.
func (s *AssistantService) Ask(ctx context.Context, userID, mode string, req models.AgriRequest) (models.AgriResponse, error) {
	system, ok := systemPrompts[mode]
	if !ok || mode == ModeVision {
		return models.AgriResponse{}, &ValidationError{Message: "Unknown assistant mode"}
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return models.AgriResponse{}, &ValidationError{Message: "Message is required"}
	}

	resp := models.AgriResponse{Type: mode}

	var history []models.ChatMessage
	if mode == ModeChat {
		resp.SessionID, history = s.Chats.Open(userID, req.SessionID)
	}

	answer, err := s.generate(ctx, system, message, history)
	if err != nil {
		s.log().Error("assistant_generate_failed",
			zap.String("mode", mode),
			zap.String("message", utils.Truncate(message, logMessageLimit)),
			zap.Error(err))
		resp.Message = AssistantFailureMessage
		return resp, nil
	}

	if mode == ModeChat {
		s.Chats.Append(userID, resp.SessionID,
			models.ChatMessage{Sender: models.SenderUser, Text: message},
			models.ChatMessage{Sender: models.SenderAI, Text: answer},
		)
	}
	resp.Message = answer
	resp.Success = true
	return resp, nil
}

// Vision answers a question about an uploaded photo.
func (s *AssistantService) Vision(ctx context.Context, req models.AgriRequest) (models.AgriResponse, error) {
	imageFormat, image, err := ParseImageDataURL(req.ImageData)
	if err != nil {
		return models.AgriResponse{}, err
	}
	prompt := strings.TrimSpace(req.Message)
	if prompt == "" {
		prompt = "What is wrong with this crop?"
	}

	resp := models.AgriResponse{Type: ModeVision}
	if s.Generator == nil {
		s.log().Error("assistant_generate_failed", zap.String("mode", ModeVision), zap.Error(errNoGenerator))
		resp.Message = AssistantFailureMessage
		return resp, nil
	}
	answer, err := s.Generator.GenerateWithImage(ctx, systemPrompts[ModeVision], prompt, imageFormat, image)
	if err != nil {
		s.log().Error("assistant_generate_failed", zap.String("mode", ModeVision), zap.Error(err))
		resp.Message = AssistantFailureMessage
		return resp, nil
	}
	resp.Message = answer
	resp.Success = true
	return resp, nil
}

// Transcript returns the stored conversation when userID owns the session.
func (s *AssistantService) Transcript(userID, sessionID string) (models.ChatTranscript, bool) {
	msgs, ok := s.Chats.Lookup(userID, sessionID)
	if !ok {
		return models.ChatTranscript{}, false
	}
	return models.ChatTranscript{SessionID: sessionID, Messages: msgs}, true
}

var errNoGenerator = errors.New("no model configured")

func (s *AssistantService) generate(ctx context.Context, system, prompt string, history []models.ChatMessage) (string, error) {
	if s.Generator == nil {
		return "", errNoGenerator
	}
	return s.Generator.Generate(ctx, system, prompt, history)
}

// ParseImageDataURL splits "data:image/png;base64,...." into the image
// format ("png") and the decoded bytes.
func ParseImageDataURL(dataURL string) (string, []byte, error) {
	parts := strings.Split(dataURL, ";base64,")
	if len(parts) != 2 {
		return "", nil, &ValidationError{Message: "Invalid image data format"}
	}

	mimeTypeParts := strings.Split(strings.TrimPrefix(parts[0], "data:"), "/")
	if len(mimeTypeParts) != 2 || mimeTypeParts[0] != "image" || mimeTypeParts[1] == "" {
		return "", nil, &ValidationError{Message: "Invalid image mime type"}
	}

	imageData, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(imageData) == 0 {
		return "", nil, &ValidationError{Message: "Failed to decode image data"}
	}
	return mimeTypeParts[1], imageData, nil
}
