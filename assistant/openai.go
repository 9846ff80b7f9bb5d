package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider speaks the OpenAI chat completions API. Ollama and
// DeepSeek use it through their compatible endpoints.
type OpenAIProvider struct {
	name        string
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIProvider returns a provider named name. An empty baseURL
// selects the OpenAI endpoint.
func NewOpenAIProvider(name, apiKey, baseURL, model string, maxTokens int, temperature float32) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		name:        name,
		client:      openai.NewClientWithConfig(config),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (p *OpenAIProvider) Name() string  { return p.name }
func (p *OpenAIProvider) Model() string { return p.model }

// Chat sends a chat completion request.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    convertToOpenAIMessages(messages),
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", openAIError(fmt.Errorf("chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: ErrorTransport, Cause: errors.New("empty response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// Ping lists the served models and checks that the configured one is
// among them.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return openAIError(fmt.Errorf("list models: %w", err))
	}
	available := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		if m.ID == p.model {
			return nil
		}
		available = append(available, m.ID)
	}
	return &Error{Kind: ErrorModel, Cause: fmt.Errorf("%s not in %v", p.model, available)}
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
		return &Error{Kind: ErrorModel, Cause: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusNotFound {
		return &Error{Kind: ErrorModel, Cause: err}
	}
	return transportError(err)
}

func convertToOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

var _ Provider = (*OpenAIProvider)(nil)
