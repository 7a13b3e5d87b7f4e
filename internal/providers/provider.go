// internal/providers/provider.go

// Package providers defines the boundary to the completion transport. A provider
// accepts an ordered message list plus sampling settings and streams back
// incremental content fragments until the upstream stream ends or fails.
package providers

import (
	"context"
	"time"

	"github.com/mwiater/promptlab/internal/appconfig"
)

// Message roles understood by every transport.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamMetadata describes a completed stream.
type StreamMetadata struct {
	Model     string
	CreatedAt time.Time
	Done      bool
	Chunks    int
}

// StreamRequest encapsulates all the information needed to initiate a chat stream.
type StreamRequest struct {
	Model    string
	Messages []ChatMessage
	Settings appconfig.Settings
}

// StreamCallbacks defines the callback functions that are invoked during a chat stream.
// OnChunk is called for each content fragment received, in arrival order, and
// OnComplete once the upstream stream has ended. An error returned from either
// callback aborts the stream and is returned from Stream.
type StreamCallbacks struct {
	OnChunk    func(ChatMessage) error
	OnComplete func(StreamMetadata) error
}

// ChatProvider is the interface every completion transport implements.
type ChatProvider interface {
	// Stream issues exactly one streamed completion request. Transport failures
	// are returned unmodified; no retries are attempted.
	Stream(ctx context.Context, req StreamRequest, callbacks StreamCallbacks) error
	// Close releases any resources held by the provider.
	Close() error
}
