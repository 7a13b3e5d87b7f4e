// Package openai provides a ChatProvider backed by the hosted OpenAI chat
// completions API through github.com/sashabaranov/go-openai.
package openai

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/providers"
)

const providerName = "openai"

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("openai: API key is not set (OPENAI_API_KEY)")

// Provider implements providers.ChatProvider on top of a go-openai client.
type Provider struct {
	client *goopenai.Client
}

// New builds a Provider from the configuration snapshot. BaseURL, when set,
// points the client at any OpenAI-compatible endpoint.
func New(cfg *appconfig.Config) (*Provider, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	clientCfg := goopenai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = strings.TrimRight(base, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout()}
	return &Provider{client: goopenai.NewClientWithConfig(clientCfg)}, nil
}

// Stream issues one streamed chat completion and forwards every non-empty
// content delta to callbacks.OnChunk.
func (p *Provider) Stream(ctx context.Context, req providers.StreamRequest, callbacks providers.StreamCallbacks) error {
	request := buildRequest(req)
	logging.LogRequest("PROMPTLAB->LLM", providerName, req.Model, request)

	stream, err := p.client.CreateChatCompletionStream(ctx, request)
	if err != nil {
		return err
	}
	defer stream.Close()

	finalModel := ""
	chunks := 0
	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if response.Model != "" {
			finalModel = response.Model
		}
		if len(response.Choices) == 0 {
			continue
		}
		delta := response.Choices[0].Delta
		if delta.Content == "" {
			continue
		}
		logging.LogRequest("LLM->PROMPTLAB", providerName, req.Model, delta.Content)
		chunks++
		if callbacks.OnChunk != nil {
			role := delta.Role
			if role == "" {
				role = providers.RoleAssistant
			}
			if err := callbacks.OnChunk(providers.ChatMessage{Role: role, Content: delta.Content}); err != nil {
				return err
			}
		}
	}

	if callbacks.OnComplete != nil {
		if finalModel == "" {
			finalModel = req.Model
		}
		return callbacks.OnComplete(providers.StreamMetadata{
			Model:     finalModel,
			CreatedAt: time.Now(),
			Done:      true,
			Chunks:    chunks,
		})
	}
	return nil
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	return nil
}

func buildRequest(req providers.StreamRequest) goopenai.ChatCompletionRequest {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    toRole(msg.Role),
			Content: msg.Content,
		})
	}

	out := goopenai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   true,
	}
	s := req.Settings
	if s.Temperature != nil {
		out.Temperature = explicitFloat(*s.Temperature)
	}
	if s.TopP != nil {
		out.TopP = explicitFloat(*s.TopP)
	}
	if s.MaxTokens != nil {
		out.MaxTokens = *s.MaxTokens
	}
	if s.FrequencyPenalty != nil {
		out.FrequencyPenalty = float32(*s.FrequencyPenalty)
	}
	if s.PresencePenalty != nil {
		out.PresencePenalty = float32(*s.PresencePenalty)
	}
	return out
}

// explicitFloat keeps an explicit zero on the wire; go-openai omits zero
// float fields, which the API reads as its own default.
func explicitFloat(v float64) float32 {
	if v == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(v)
}

func toRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case providers.RoleSystem:
		return goopenai.ChatMessageRoleSystem
	case providers.RoleAssistant:
		return goopenai.ChatMessageRoleAssistant
	default:
		return goopenai.ChatMessageRoleUser
	}
}
