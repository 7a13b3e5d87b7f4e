// internal/metrics/provider.go
package metrics

import (
	"context"
	"time"

	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/providers"
)

// Provider is a decorator that wraps a ChatProvider to record metrics.
type Provider struct {
	wrapped    providers.ChatProvider
	aggregator *Aggregator
	now        func() time.Time
}

// NewProvider creates a new metrics-enabled provider that wraps an existing ChatProvider.
func NewProvider(wrapped providers.ChatProvider, aggregator *Aggregator) *Provider {
	logging.LogDebug("[METRICS] Wrapping provider with metrics provider")
	return &Provider{wrapped: wrapped, aggregator: aggregator, now: time.Now}
}

// Stream forwards to the wrapped provider and records duration, time to first
// fragment and fragment count for every request, failed or not.
func (p *Provider) Stream(ctx context.Context, req providers.StreamRequest, callbacks providers.StreamCallbacks) error {
	start := p.now()
	var firstChunk time.Time
	chunks := 0

	wrapped := providers.StreamCallbacks{
		OnChunk: func(chunk providers.ChatMessage) error {
			if chunks == 0 {
				firstChunk = p.now()
			}
			chunks++
			if callbacks.OnChunk != nil {
				return callbacks.OnChunk(chunk)
			}
			return nil
		},
		OnComplete: callbacks.OnComplete,
	}

	err := p.wrapped.Stream(ctx, req, wrapped)

	if p.aggregator != nil {
		status := StatusSuccess
		if err != nil {
			status = StatusError
		}
		var ttft time.Duration
		if chunks > 0 {
			ttft = firstChunk.Sub(start)
		}
		p.aggregator.Record(req.Model, status, p.now().Sub(start), ttft, chunks)
	}
	return err
}

// Close passes the call through to the wrapped provider.
func (p *Provider) Close() error {
	return p.wrapped.Close()
}
