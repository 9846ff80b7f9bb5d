// Package assistant talks to a chat model that explains parse failures
// and solution steps, and holds a short dialog with the user.
//
// A Provider hides the vendor API:
// - client construction and authentication
// - request and response conversion
// - classification of transport failures into Error kinds
//
// Session layers the prompts and the dialog history on top and never
// returns an error to its caller.
package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Message is one chat turn. Role is system, user or assistant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is a chat completion backend.
type Provider interface {
	// Name returns the provider name (for logging).
	Name() string

	// Model returns the model in use.
	Model() string

	// Chat sends messages and returns the reply text.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Ping reports whether the backend is reachable and serves the model.
	Ping(ctx context.Context) error
}

// Kind names a supported provider.
type Kind string

const (
	KindOpenAI    Kind = "openai"
	KindOllama    Kind = "ollama"
	KindDeepSeek  Kind = "deepseek"
	KindAnthropic Kind = "anthropic"
	KindGemini    Kind = "gemini"
)

const (
	OllamaBaseURL   = "http://localhost:11434/v1"
	deepseekBaseURL = "https://api.deepseek.com/v1"
)

// DefaultModel returns the default model for k.
func (k Kind) DefaultModel() string {
	switch k {
	case KindOpenAI:
		return "gpt-4o-mini"
	case KindOllama:
		return "gemma3:4b-it-qat"
	case KindDeepSeek:
		return "deepseek-chat"
	case KindAnthropic:
		return "claude-sonnet-4-5"
	case KindGemini:
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

// EnvVar returns the environment variable holding the API key for k.
// Ollama needs none.
func (k Kind) EnvVar() string {
	switch k {
	case KindOpenAI:
		return "OPENAI_API_KEY"
	case KindDeepSeek:
		return "DEEPSEEK_API_KEY"
	case KindAnthropic:
		return "ANTHROPIC_API_KEY"
	case KindGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// ParseKind parses a provider name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai", "gpt":
		return KindOpenAI, nil
	case "ollama", "":
		return KindOllama, nil
	case "deepseek":
		return KindDeepSeek, nil
	case "anthropic", "claude":
		return KindAnthropic, nil
	case "gemini", "google":
		return KindGemini, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", s)
	}
}

// Options configures New.
type Options struct {
	Kind        Kind
	Model       string
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float32
}

// New builds the provider described by o, filling the model, base URL
// and API key from defaults and the environment.
func New(o Options) (Provider, error) {
	if o.Kind == "" {
		o.Kind = KindOllama
	}
	if o.Model == "" {
		o.Model = o.Kind.DefaultModel()
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = 1024
	}
	if o.APIKey == "" && o.Kind.EnvVar() != "" {
		o.APIKey = os.Getenv(o.Kind.EnvVar())
	}

	switch o.Kind {
	case KindOllama:
		if o.BaseURL == "" {
			o.BaseURL = OllamaBaseURL
		}
		// The OpenAI-compatible endpoint ignores the key but the client
		// requires one.
		return NewOpenAIProvider(string(KindOllama), "ollama", o.BaseURL, o.Model, o.MaxTokens, o.Temperature), nil
	case KindOpenAI, KindDeepSeek:
		if o.APIKey == "" {
			return nil, fmt.Errorf("%s: %s environment variable not set", o.Kind, o.Kind.EnvVar())
		}
		if o.BaseURL == "" && o.Kind == KindDeepSeek {
			o.BaseURL = deepseekBaseURL
		}
		return NewOpenAIProvider(string(o.Kind), o.APIKey, o.BaseURL, o.Model, o.MaxTokens, o.Temperature), nil
	case KindAnthropic:
		if o.APIKey == "" {
			return nil, fmt.Errorf("%s: %s environment variable not set", o.Kind, o.Kind.EnvVar())
		}
		return NewAnthropicProvider(o.APIKey, o.BaseURL, o.Model, o.MaxTokens, o.Temperature), nil
	case KindGemini:
		if o.APIKey == "" {
			return nil, fmt.Errorf("%s: %s environment variable not set", o.Kind, o.Kind.EnvVar())
		}
		return NewGeminiProvider(o.APIKey, o.Model, o.MaxTokens, o.Temperature), nil
	}
	return nil, fmt.Errorf("unknown provider: %s", o.Kind)
}
