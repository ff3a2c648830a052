package llm

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// GeminiChatModel talks to the Gemini API through google.golang.org/genai.
type GeminiChatModel struct {
	client *genai.Client
	model  string
}

// NewGeminiChatModel creates the client. An empty baseURL uses the public API.
func NewGeminiChatModel(ctx context.Context, apiKey, model, baseURL string) (*GeminiChatModel, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewGeminiChatModel")
	defer span.End()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  instrumentedHTTPClient(),
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	span.SetStatus(codes.Ok, "Gemini client created")
	return &GeminiChatModel{client: client, model: model}, nil
}

func (g *GeminiChatModel) Model() string { return g.model }

func (g *GeminiChatModel) SendMessage(ctx context.Context, history []Turn, message string, cfg GenerationConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "Gemini.SendMessage", trace.WithAttributes(
		attribute.String("model", g.model),
		attribute.Int("history.turns", len(history)),
		attribute.Int("message.length", len(message)),
	))
	defer span.End()

	chat, err := g.client.Chats.Create(ctx, g.model, geminiConfig(cfg), geminiHistory(history))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create chat")
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	result, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	responseText := result.Text()
	span.SetAttributes(attribute.Int("response.length", len(responseText)))
	span.SetStatus(codes.Ok, "Message sent successfully")
	return responseText, nil
}

func geminiConfig(cfg GenerationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		MaxOutputTokens:  cfg.MaxOutputTokens,
		ResponseMIMEType: cfg.ResponseMIMEType,
	}
	if cfg.Temperature != 0 {
		out.Temperature = genai.Ptr(cfg.Temperature)
	}
	if cfg.TopP != 0 {
		out.TopP = genai.Ptr(cfg.TopP)
	}
	if cfg.TopK != 0 {
		out.TopK = genai.Ptr(cfg.TopK)
	}
	return out
}

func geminiHistory(history []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return contents
}
