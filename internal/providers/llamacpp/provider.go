// internal/providers/llamacpp/provider.go
// Package llamacpp provides a ChatProvider backed by an OpenAI-compatible HTTP
// API served by a self-hosted runtime such as llama.cpp.
package llamacpp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/providers"
)

const (
	providerName   = "llama.cpp"
	defaultBaseURL = "http://localhost:8080"
)

// ErrIncompleteStream is returned when the connection closes before the
// server sends the [DONE] terminator.
var ErrIncompleteStream = errors.New("llama.cpp: stream ended before [DONE]")

// Provider implements the providers.ChatProvider interface using llama.cpp HTTP APIs.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		client: &http.Client{
			Timeout:   cfg.RequestTimeout(),
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
	}
}

// Stream issues a chat request and forwards output to the provided callbacks.
func (p *Provider) Stream(ctx context.Context, req providers.StreamRequest, callbacks providers.StreamCallbacks) error {
	payload := map[string]any{
		"model":    req.Model,
		"messages": toOpenAIMessages(req.Messages),
		"stream":   true,
	}
	applySettings(payload, req.Settings)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	logging.LogRequest("PROMPTLAB->LLM", providerName, req.Model, body)

	endpoint := p.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		logging.LogRequest("LLM->PROMPTLAB", providerName, req.Model, raw)
		return fmt.Errorf("llama.cpp: /v1/chat/completions returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	return p.handleStreaming(resp, req, callbacks)
}

func (p *Provider) handleStreaming(resp *http.Response, req providers.StreamRequest, callbacks providers.StreamCallbacks) error {
	reader := bufio.NewReader(resp.Body)
	var finalModel string
	chunks := 0
	done := false
	for !done {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		line = strings.TrimSpace(line)
		if line != "" && strings.HasPrefix(line, "data:") {
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "[DONE]" {
				done = true
				break
			}
			logging.LogRequest("LLM->PROMPTLAB", providerName, req.Model, data)

			var chunk chatStreamChunk
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				return fmt.Errorf("llama.cpp: malformed stream chunk: %w", err)
			}
			if chunk.Error != nil && chunk.Error.Message != "" {
				return fmt.Errorf("llama.cpp: stream error: %s", chunk.Error.Message)
			}
			if chunk.Model != "" {
				finalModel = chunk.Model
			}
			if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
				role := chunk.Choices[0].Delta.Role
				if role == "" {
					role = providers.RoleAssistant
				}
				chunks++
				if callbacks.OnChunk != nil {
					msg := providers.ChatMessage{Role: role, Content: chunk.Choices[0].Delta.Content}
					if err := callbacks.OnChunk(msg); err != nil {
						return err
					}
				}
			}
		}
		if readErr != nil {
			break
		}
	}
	if !done {
		return ErrIncompleteStream
	}

	if callbacks.OnComplete != nil {
		modelName := finalModel
		if modelName == "" {
			modelName = req.Model
		}
		meta := providers.StreamMetadata{
			Model:     modelName,
			CreatedAt: time.Now(),
			Done:      true,
			Chunks:    chunks,
		}
		if err := callbacks.OnComplete(meta); err != nil {
			return err
		}
	}
	return nil
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

type chatStreamChunk struct {
	Model   string `json:"model"`
	Choices []struct {
		Delta struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func applySettings(payload map[string]any, s appconfig.Settings) {
	if s.Temperature != nil {
		payload["temperature"] = *s.Temperature
	}
	if s.TopP != nil {
		payload["top_p"] = *s.TopP
	}
	if s.MaxTokens != nil {
		payload["max_tokens"] = *s.MaxTokens
	}
	if s.FrequencyPenalty != nil {
		payload["frequency_penalty"] = *s.FrequencyPenalty
	}
	if s.PresencePenalty != nil {
		payload["presence_penalty"] = *s.PresencePenalty
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toOpenAIMessages(messages []providers.ChatMessage) []openAIMessage {
	out := make([]openAIMessage, 0, len(messages))
	for _, msg := range messages {
		role := strings.TrimSpace(msg.Role)
		if role == "" {
			role = providers.RoleUser
		}
		out = append(out, openAIMessage{Role: role, Content: msg.Content})
	}
	return out
}
