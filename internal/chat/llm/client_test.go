package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"obsidian-club/internal/config"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.LLMConfig{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Temperature: 0.7,
		MaxTokens:   1024,
	}, server.Client(), logger.NewLogger())
	return client, server
}

func TestCompleteSendsExpectedRequest(t *testing.T) {
	var got completionRequest
	var authHeader string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "¡Hola! 🖤"}},
			},
		})
	})

	reply, err := client.Complete(context.Background(), "llama-3.3-70b-versatile",
		[]models.ChatMessage{{Role: models.RoleUser, Content: "hola"}})

	assert.NoError(t, err)
	assert.Equal(t, "¡Hola! 🖤", reply)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1024, got.MaxTokens)
}

func TestCompleteClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrModelNotFound},
		{http.StatusTooManyRequests, ErrOverloaded},
		{http.StatusBadGateway, ErrOverloaded},
		{http.StatusServiceUnavailable, ErrOverloaded},
	}

	for _, tc := range cases {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := client.Complete(context.Background(), "m", nil)
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestCompleteClassifiesDecommissionedModel(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "The model `llama3-8b-8192` has been decommissioned",
				"code":    "model_decommissioned",
			},
		})
	})

	_, err := client.Complete(context.Background(), "llama3-8b-8192", nil)
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestCompleteTransportFailureReadsAsOverloaded(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Complete(context.Background(), "m", nil)
	assert.ErrorIs(t, err, ErrOverloaded)
}

func TestCompleteEmptyChoicesIsAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	_, err := client.Complete(context.Background(), "m", nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrModelNotFound)
	assert.NotErrorIs(t, err, ErrOverloaded)
}
