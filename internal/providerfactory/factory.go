// internal/providerfactory/factory.go
package providerfactory

import (
	"fmt"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/metrics"
	"github.com/mwiater/promptlab/internal/providers"
	"github.com/mwiater/promptlab/internal/providers/llamacpp"
	"github.com/mwiater/promptlab/internal/providers/openai"
)

// NewChatProvider selects and configures the completion transport named by
// the configuration and wraps it with metrics collection if enabled.
func NewChatProvider(cfg *appconfig.Config) (providers.ChatProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}

	var provider providers.ChatProvider
	name := appconfig.NormalizeProvider(cfg.Provider)
	switch name {
	case appconfig.ProviderOpenAI:
		p, err := openai.New(cfg)
		if err != nil {
			logging.LogEvent("openai provider unavailable: %v", err)
			return nil, err
		}
		provider = p
	case appconfig.ProviderLlamaCpp:
		provider = llamacpp.New(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	logging.LogEvent("provider ready: %s (model %s)", name, cfg.Model)

	if cfg.Metrics {
		provider = metrics.NewProvider(provider, metrics.GetInstance())
	}
	return provider, nil
}
