package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve/assistant"
	"github.com/njchilds90/mathsolve/symbolic"
)

func newEngine() *symbolic.Engine { return symbolic.NewEngine() }

// ollamaStub serves the OpenAI-compatible model list and chat endpoints.
func ollamaStub(t *testing.T, models ...string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		data := make([]map[string]string, len(models))
		for i, m := range models {
			data[i] = map[string]string{"id": m, "object": "model"}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"object": "list", "data": data})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string              `json:"model"`
			Messages []assistant.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Model != "gemma3:4b-it-qat" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"model not found","type":"api_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]string{
					"role":    "assistant",
					"content": "echo: " + req.Messages[len(req.Messages)-1].Content,
				},
			}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProvider_Ollama(t *testing.T) {
	srv := ollamaStub(t, "llama3", "gemma3:4b-it-qat")
	p, err := assistant.New(assistant.Options{Kind: assistant.KindOllama, BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
	assert.Equal(t, "gemma3:4b-it-qat", p.Model())

	require.NoError(t, p.Ping(context.Background()))
	reply, err := p.Chat(context.Background(), []assistant.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", reply)
}

func TestOpenAIProvider_MissingModel(t *testing.T) {
	srv := ollamaStub(t, "llama3")
	p, err := assistant.New(assistant.Options{Kind: assistant.KindOllama, BaseURL: srv.URL + "/v1", Model: "mistral"})
	require.NoError(t, err)

	assert.ErrorIs(t, p.Ping(context.Background()), assistant.ErrModelUnavailable)
	_, err = p.Chat(context.Background(), []assistant.Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, assistant.ErrModelUnavailable)
}

func TestOpenAIProvider_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := assistant.New(assistant.Options{Kind: assistant.KindOllama, BaseURL: url + "/v1"})
	require.NoError(t, err)
	err = p.Ping(context.Background())
	assert.ErrorIs(t, err, assistant.ErrUnavailable)

	s := assistant.NewSession(p)
	assert.Equal(t, "Assistant unavailable", s.Chat(context.Background(), "hi"))
}

func TestNew(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := assistant.New(assistant.Options{Kind: assistant.KindOpenAI})
	assert.ErrorContains(t, err, "OPENAI_API_KEY")

	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	p, err := assistant.New(assistant.Options{Kind: assistant.KindDeepSeek})
	require.NoError(t, err)
	assert.Equal(t, "deepseek", p.Name())
	assert.Equal(t, "deepseek-chat", p.Model())

	p, err = assistant.New(assistant.Options{Kind: assistant.KindAnthropic, APIKey: "sk-ant-test", Model: "claude-x"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
	assert.Equal(t, "claude-x", p.Model())
	assert.NoError(t, p.Ping(context.Background()))

	_, err = assistant.New(assistant.Options{Kind: "bard"})
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]assistant.Kind{
		"openai": assistant.KindOpenAI,
		"Claude": assistant.KindAnthropic,
		"ollama": assistant.KindOllama,
		"":       assistant.KindOllama,
		"google": assistant.KindGemini,
	} {
		got, err := assistant.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := assistant.ParseKind("bard")
	assert.Error(t, err)
}

func TestError_Is(t *testing.T) {
	err := error(&assistant.Error{Kind: assistant.ErrorModel, Cause: errors.New("x")})
	assert.ErrorIs(t, err, assistant.ErrModelUnavailable)
	assert.NotErrorIs(t, err, assistant.ErrUnavailable)
	assert.Contains(t, err.Error(), "model unavailable")
}
