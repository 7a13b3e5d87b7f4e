// Package completion issues single streamed completion requests, either
// accumulating the response or forwarding each fragment to a live sink.
package completion

import (
	"context"
	"strings"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/providers"
)

// Sink receives a message incrementally. StreamToken appends text to the
// message being built and Send finalizes it.
type Sink interface {
	StreamToken(token string) error
	Send() error
}

// Complete issues one streamed completion and returns the concatenation of
// every non-empty content fragment in arrival order. Nothing is emitted until
// the stream ends. Provider errors are returned unmodified.
func Complete(ctx context.Context, provider providers.ChatProvider, model string, messages []providers.ChatMessage, settings appconfig.Settings) (string, error) {
	var sb strings.Builder
	err := provider.Stream(ctx, request(model, messages, settings), providers.StreamCallbacks{
		OnChunk: func(msg providers.ChatMessage) error {
			if msg.Content != "" {
				sb.WriteString(msg.Content)
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CompleteStreaming issues one streamed completion and pushes each non-empty
// content fragment to sink as it arrives. sink.Send is called once the
// upstream stream ends successfully.
func CompleteStreaming(ctx context.Context, provider providers.ChatProvider, model string, messages []providers.ChatMessage, settings appconfig.Settings, sink Sink) error {
	err := provider.Stream(ctx, request(model, messages, settings), providers.StreamCallbacks{
		OnChunk: func(msg providers.ChatMessage) error {
			if msg.Content == "" {
				return nil
			}
			return sink.StreamToken(msg.Content)
		},
	})
	if err != nil {
		return err
	}
	return sink.Send()
}

func request(model string, messages []providers.ChatMessage, settings appconfig.Settings) providers.StreamRequest {
	s := settings.Clone()
	s.Stream = true
	msgs := make([]providers.ChatMessage, len(messages))
	copy(msgs, messages)
	return providers.StreamRequest{
		Model:    model,
		Messages: msgs,
		Settings: s,
	}
}
