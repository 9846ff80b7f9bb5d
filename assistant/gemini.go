package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider speaks the Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	initErr     error
}

// NewGeminiProvider returns a Gemini provider. A client construction
// failure is reported on first use.
func NewGeminiProvider(apiKey, model string, maxTokens int, temperature float32) *GeminiProvider {
	p := &GeminiProvider{model: model, maxTokens: int32(maxTokens), temperature: temperature}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		p.initErr = &Error{Kind: ErrorUnavailable, Cause: fmt.Errorf("initialize gemini client: %w", err)}
		return p
	}
	p.client = client
	return p
}

func (p *GeminiProvider) Name() string  { return string(KindGemini) }
func (p *GeminiProvider) Model() string { return p.model }

// Chat sends a GenerateContent request with the system message as the
// system instruction.
func (p *GeminiProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p.initErr != nil {
		return "", p.initErr
	}
	contents, system := convertToGeminiMessages(messages)
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.temperature),
		MaxOutputTokens: p.maxTokens,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", transportError(fmt.Errorf("chat completion failed: %w", err))
	}
	text := resp.Text()
	if text == "" {
		return "", &Error{Kind: ErrorTransport, Cause: errors.New("empty response from gemini")}
	}
	return text, nil
}

// Ping fetches the model's metadata.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	if p.initErr != nil {
		return p.initErr
	}
	if _, err := p.client.Models.Get(ctx, p.model, nil); err != nil {
		return &Error{Kind: ErrorModel, Cause: err}
	}
	return nil
}

func convertToGeminiMessages(messages []Message) ([]*genai.Content, string) {
	var contents []*genai.Content
	var system string
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			system = msg.Content
		case "user":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}
	return contents, system
}

var _ Provider = (*GeminiProvider)(nil)
