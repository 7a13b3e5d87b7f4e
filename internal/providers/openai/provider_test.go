package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/providers"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New(&appconfig.Config{APIKey: "sk-test", BaseURL: server.URL + "/v1", TimeoutSeconds: 5})
	require.NoError(t, err)
	return p
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(&appconfig.Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestStreamForwardsDeltas(t *testing.T) {
	var body map[string]any
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)

		w.Header().Set("Content-Type", "text/event-stream")
		for _, content := range []string{"Once", "", " upon", " a time"} {
			fmt.Fprintf(w, "data: {\"model\":\"gpt-test\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", content)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	var chunks []string
	var meta providers.StreamMetadata
	err := p.Stream(context.Background(), providers.StreamRequest{
		Model:    "gpt-3.5-turbo",
		Messages: []providers.ChatMessage{{Role: providers.RoleSystem, Content: "sys"}, {Role: providers.RoleUser, Content: "tell"}},
		Settings: appconfig.Settings{Temperature: appconfig.Float(0.5), MaxTokens: appconfig.Int(800)},
	}, providers.StreamCallbacks{
		OnChunk: func(m providers.ChatMessage) error {
			chunks = append(chunks, m.Content)
			return nil
		},
		OnComplete: func(m providers.StreamMetadata) error {
			meta = m
			return nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Once", " upon", " a time"}, chunks)
	assert.Equal(t, "gpt-test", meta.Model)
	assert.Equal(t, 3, meta.Chunks)
	assert.True(t, meta.Done)

	assert.Equal(t, true, body["stream"])
	assert.Equal(t, "gpt-3.5-turbo", body["model"])
	assert.InDelta(t, 0.5, body["temperature"], 1e-6)
	assert.EqualValues(t, 800, body["max_tokens"])
}

func TestStreamPropagatesAPIError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	})

	completed := false
	err := p.Stream(context.Background(), providers.StreamRequest{Model: "m"}, providers.StreamCallbacks{
		OnComplete: func(providers.StreamMetadata) error {
			completed = true
			return nil
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate limit reached")
	assert.False(t, completed)
}

func TestBuildRequestMapsRolesAndSettings(t *testing.T) {
	req := buildRequest(providers.StreamRequest{
		Model: "m",
		Messages: []providers.ChatMessage{
			{Role: "SYSTEM", Content: "a"},
			{Role: "assistant", Content: "b"},
			{Role: "", Content: "c"},
		},
		Settings: appconfig.Settings{TopP: appconfig.Float(0.9), PresencePenalty: appconfig.Float(0.4), FrequencyPenalty: appconfig.Float(0.3)},
	})

	require.Len(t, req.Messages, 3)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "assistant", req.Messages[1].Role)
	assert.Equal(t, "user", req.Messages[2].Role)
	assert.True(t, req.Stream)
	assert.InDelta(t, 0.9, req.TopP, 1e-6)
	assert.InDelta(t, 0.4, req.PresencePenalty, 1e-6)
	assert.InDelta(t, 0.3, req.FrequencyPenalty, 1e-6)
	assert.Zero(t, req.Temperature)
	assert.Zero(t, req.MaxTokens)

	zeroed := buildRequest(providers.StreamRequest{
		Model:    "m",
		Settings: appconfig.Settings{Temperature: appconfig.Float(0), TopP: appconfig.Float(0), MaxTokens: appconfig.Int(1000)},
	})
	assert.Equal(t, float32(math.SmallestNonzeroFloat32), zeroed.Temperature)
	assert.Equal(t, float32(math.SmallestNonzeroFloat32), zeroed.TopP)

	body, err := json.Marshal(zeroed)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"temperature":`)
	assert.Contains(t, string(body), `"top_p":`)
}
