package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/Domenick1991/fanzone/config"
	"github.com/Domenick1991/fanzone/internal/domain"
)

const (
	temperature     = 0.7
	topP            = 0.8
	topK            = 40
	maxOutputTokens = 2048
)

// Client completes prompts against the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// New returns a client for cfg. Without an API key the client is created
// but every call fails with domain.ErrCompleterUnavailable.
func New(ctx context.Context, cfg config.ChatConfig) (*Client, error) {
	c := &Client{model: cfg.Model, timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	if cfg.APIKey == "" {
		return c, nil
	}

	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewClient")
	defer span.End()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create gemini client")
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

func (c *Client) Available() bool {
	return c != nil && c.client != nil
}

// Complete sends prompt as the next user turn after history, steered by systemPrompt.
func (c *Client) Complete(ctx context.Context, systemPrompt string, history []domain.Turn, prompt string) (string, error) {
	if !c.Available() {
		return "", domain.ErrCompleterUnavailable
	}

	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "Complete", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.Int("history.turns", len(history)),
		attribute.String("model", c.model),
	))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	chat, err := c.client.Chats.Create(ctx, c.model, generationConfig(systemPrompt), toContents(history))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create chat")
		return "", fmt.Errorf("%w: create chat: %v", domain.ErrExternalService, err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send message")
		return "", fmt.Errorf("%w: send message: %v", domain.ErrExternalService, err)
	}

	text := strings.TrimSpace(resp.Text())
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "completed")
	return text, nil
}

func generationConfig(systemPrompt string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		TopP:            genai.Ptr[float32](topP),
		TopK:            genai.Ptr[float32](topK),
		MaxOutputTokens: maxOutputTokens,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	return cfg
}

func toContents(history []domain.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == domain.RoleAssistantTurn {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return contents
}
