package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"agrisphere/models"
)

var ErrEmptyCompletion = errors.New("model returned no text")

// Generator produces text from a prompt. The Gemini client implements it;
// tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, system, prompt string, history []models.ChatMessage) (string, error)
	GenerateWithImage(ctx context.Context, system, prompt, imageFormat string, image []byte) (string, error)
}

// GeminiGenerator wraps one long-lived Gemini client.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator initializes the Gemini client.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func (g *GeminiGenerator) generativeModel(system string) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	return model
}

func (g *GeminiGenerator) Generate(ctx context.Context, system, prompt string, history []models.ChatMessage) (string, error) {
	cs := g.generativeModel(system).StartChat()
	cs.History = chatHistory(history)

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// chatHistory converts a transcript into chat turns. Gemini expects the
// history to open with a user turn, so leading model turns such as the
// greeting are dropped.
func chatHistory(history []models.ChatMessage) []*genai.Content {
	for len(history) > 0 && history[0].Sender == models.SenderAI {
		history = history[1:]
	}
	var out []*genai.Content
	for _, msg := range history {
		role := "user"
		if msg.Sender == models.SenderAI {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return out
}

func (g *GeminiGenerator) GenerateWithImage(ctx context.Context, system, prompt, imageFormat string, image []byte) (string, error) {
	resp, err := g.generativeModel(system).GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData(imageFormat, image),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content from multimodal input: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
