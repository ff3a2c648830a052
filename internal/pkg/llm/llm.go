package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/config"
)

// Role of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation history.
type Turn struct {
	Role Role
	Text string
}

// GenerationConfig holds the decoding parameters for a single call.
// Zero values are left to the provider defaults.
type GenerationConfig struct {
	Temperature      float32
	TopP             float32
	TopK             float32
	MaxOutputTokens  int32
	ResponseMIMEType string
}

// ChatModel opens a conversation seeded with history and sends message as the
// next user turn, returning the model's text reply.
type ChatModel interface {
	SendMessage(ctx context.Context, history []Turn, message string, cfg GenerationConfig) (string, error)
	Model() string
}

// NewChatModel builds the chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (ChatModel, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiChatModel(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case config.ProviderOpenAI:
		return NewOpenAIChatModel(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedProvider, cfg.Provider)
	}
}

func instrumentedHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}
