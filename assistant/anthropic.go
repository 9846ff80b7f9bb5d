package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider speaks the Anthropic Messages API.
type AnthropicProvider struct {
	client      anthropic.Client
	apiKey      string
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropicProvider returns an Anthropic provider. An empty baseURL
// selects the public endpoint.
func NewAnthropicProvider(apiKey, baseURL, model string, maxTokens int, temperature float32) *AnthropicProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicProvider{
		client:      anthropic.NewClient(opts...),
		apiKey:      apiKey,
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: float64(temperature),
	}
}

func (p *AnthropicProvider) Name() string  { return string(KindAnthropic) }
func (p *AnthropicProvider) Model() string { return p.model }

// Chat sends a Messages request. The system message goes into the
// request's system field.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	converted, system := convertToAnthropicMessages(messages)
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.maxTokens,
		Messages:    converted,
		Temperature: anthropic.Float(p.temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", anthropicError(fmt.Errorf("chat completion failed: %w", err))
	}
	content := ""
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += variant.Text
		}
	}
	return content, nil
}

// Ping only checks that a key is configured; the API has no free
// availability probe.
func (p *AnthropicProvider) Ping(context.Context) error {
	if p.apiKey == "" {
		return &Error{Kind: ErrorUnavailable, Cause: errors.New("no API key")}
	}
	return nil
}

func anthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return &Error{Kind: ErrorModel, Cause: err}
	}
	return transportError(err)
}

func convertToAnthropicMessages(messages []Message) ([]anthropic.MessageParam, string) {
	var out []anthropic.MessageParam
	var system string
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			system = msg.Content
		case "user":
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case "assistant":
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return out, system
}

var _ Provider = (*AnthropicProvider)(nil)
