package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errEmptyChoices = errors.New("chat completion returned no choices")

// OpenAIChatModel talks to an OpenAI compatible chat completions endpoint.
// TopK has no equivalent there and is ignored.
type OpenAIChatModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIChatModel creates the client. An empty baseURL uses the public API.
func NewOpenAIChatModel(apiKey, model, baseURL string) *OpenAIChatModel {
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	conf.HTTPClient = instrumentedHTTPClient()
	return &OpenAIChatModel{client: openai.NewClientWithConfig(conf), model: model}
}

func (o *OpenAIChatModel) Model() string { return o.model }

func (o *OpenAIChatModel) SendMessage(ctx context.Context, history []Turn, message string, cfg GenerationConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "OpenAI.SendMessage", trace.WithAttributes(
		attribute.String("model", o.model),
		attribute.Int("history.turns", len(history)),
		attribute.Int("message.length", len(message)),
	))
	defer span.End()

	resp, err := o.client.CreateChatCompletion(ctx, openAIRequest(o.model, history, message, cfg))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat completion failed")
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		span.RecordError(errEmptyChoices)
		span.SetStatus(codes.Error, "No choices")
		return "", errEmptyChoices
	}

	responseText := resp.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("response.length", len(responseText)))
	span.SetStatus(codes.Ok, "Message sent successfully")
	return responseText, nil
}

func openAIRequest(model string, history []Turn, message string, cfg GenerationConfig) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   int(cfg.MaxOutputTokens),
	}
	if cfg.ResponseMIMEType == "application/json" {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}
	return req
}
