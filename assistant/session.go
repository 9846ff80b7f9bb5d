package assistant

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// HistoryLimit caps the dialog history in messages.
const HistoryLimit = 20

// Prompt selects a system prompt.
type Prompt string

const (
	PromptDialog      Prompt = "dialog"
	PromptError       Prompt = "error"
	PromptExplanation Prompt = "explanation"
)

var systemPrompts = map[Prompt]string{
	PromptDialog: `You are a math assistant that helps write and solve algebra problems for a symbolic engine.
Help the user write correct expressions for it. Answer briefly and to the point. If the user asks for help with a formula, suggest a few ways to write it.
Use the standard notation: sqrt() for roots, log() for the natural logarithm, sin(), cos(), tan() for trigonometric functions, pi for π and E for e.`,

	PromptError: `You explain parse errors of mathematical expressions.
Analyze the error and explain in plain words what went wrong and how to fix it.
Be brief and constructive. Suggest a correct way to write the expression.`,

	PromptExplanation: `You explain the stages of solving a math problem with a symbolic engine.
For each stage give a short mathematical justification of what happens.
Use plain language suitable for students.`,
}

// Session is one conversation with a provider. It keeps the dialog
// history and answers every request with text: failures come back as
// sentinel replies.
type Session struct {
	provider       Provider
	logger         *zap.Logger
	skipModelCheck bool

	mu      sync.Mutex
	history []Message
	checked bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// SkipModelCheck disables the availability probe before the first call.
func SkipModelCheck(skip bool) SessionOption {
	return func(s *Session) { s.skipModelCheck = skip }
}

// NewSession starts a session with p.
func NewSession(p Provider, opts ...SessionOption) *Session {
	s := &Session{provider: p, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("provider", p.Name()), zap.String("model", p.Model()))
	return s
}

// Provider returns the session's provider.
func (s *Session) Provider() Provider { return s.provider }

// Chat sends a dialog message. The exchange is added to the history,
// which keeps the last HistoryLimit messages.
func (s *Session) Chat(ctx context.Context, message string) string {
	reply, err := s.Ask(ctx, message)
	if err != nil {
		return sentinel(err)
	}
	return reply
}

// Ask is Chat with the failure returned as an error.
func (s *Session) Ask(ctx context.Context, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := s.send(ctx, PromptDialog, message, s.history)
	if err != nil {
		return "", err
	}
	s.history = append(s.history,
		Message{Role: "user", Content: message},
		Message{Role: "assistant", Content: reply},
	)
	if len(s.history) > HistoryLimit {
		s.history = append([]Message(nil), s.history[len(s.history)-HistoryLimit:]...)
	}
	return reply, nil
}

// ExplainError asks why expression failed to parse with errMsg.
func (s *Session) ExplainError(ctx context.Context, expression, errMsg string) string {
	prompt := fmt.Sprintf("Expression: '%s'\nError: %s\nExplain the error and suggest a fix:", expression, errMsg)
	return s.oneShot(ctx, PromptError, prompt)
}

// ExplainStep asks for a justification of one solution stage.
func (s *Session) ExplainStep(ctx context.Context, stage, input, output string) string {
	prompt := fmt.Sprintf("Stage: %s\nInput: %s\nOutput: %s\nExplain this solution step:", stage, input, output)
	return s.oneShot(ctx, PromptExplanation, prompt)
}

func (s *Session) oneShot(ctx context.Context, prompt Prompt, message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply, err := s.send(ctx, prompt, message, nil)
	if err != nil {
		return sentinel(err)
	}
	return reply
}

// History returns a copy of the dialog history.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}

// Reset clears the dialog history.
func (s *Session) Reset() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// send must be called with s.mu held.
func (s *Session) send(ctx context.Context, prompt Prompt, message string, history []Message) (string, error) {
	if !s.skipModelCheck && !s.checked {
		if err := s.provider.Ping(ctx); err != nil {
			s.logger.Warn("assistant not ready", zap.Error(err))
			return "", transportError(err)
		}
		s.checked = true
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompts[prompt]})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	reply, err := s.provider.Chat(ctx, messages)
	if err != nil {
		s.logger.Warn("assistant call failed", zap.String("prompt", string(prompt)), zap.Error(err))
		return "", transportError(err)
	}
	s.logger.Debug("assistant replied", zap.String("prompt", string(prompt)), zap.Int("chars", len(reply)))
	return reply, nil
}
