package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/symbolic"
)

func serve(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	logger := zaptest.NewLogger(t)
	mux := newMux(mathsolve.NewProcessor(symbolic.NewEngine(), mathsolve.WithLogger(logger)), logger)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestTool_Solve(t *testing.T) {
	rec := serve(t, http.MethodPost, "/tool", `{"tool":"solve","params":{"expr":"x^2 - 4 = 0"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		String string `json:"string"`
		LaTeX  string `json:"latex"`
		Result struct {
			Category string `json:"category"`
			Success  bool   `json:"success"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "[-2, 2]", resp.String)
	assert.Equal(t, "-2, 2", resp.LaTeX)
	assert.Equal(t, "equation", resp.Result.Category)
	assert.True(t, resp.Result.Success)
}

func TestTool_BadRequests(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"tool":"solve","extra":1}`,
		"trailing data": `{"tool":"solve"} {}`,
		"not json":      `tool=solve`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/tool", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	rec := serve(t, http.MethodGet, "/tool", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTool_ErrorInResponse(t *testing.T) {
	rec := serve(t, http.MethodPost, "/tool", `{"tool":"plot","params":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown tool: plot")
}

func TestSchemaAndHealth(t *testing.T) {
	rec := serve(t, http.MethodGet, "/schema", "")
	assert.Equal(t, mathsolve.ToolSpec(), rec.Body.String())

	rec = serve(t, http.MethodGet, "/health", "")
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
