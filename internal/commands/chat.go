// internal/commands/chat.go
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/promptlab/cli"
	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/chat"
	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/metrics"
	"github.com/mwiater/promptlab/internal/providerfactory"
	"github.com/mwiater/promptlab/internal/testcases"
)

var (
	// startGUI is a function alias to cli.StartGUI for starting the chat interface.
	startGUI = cli.StartGUI
	// newProvider is a function alias to providerfactory.NewChatProvider.
	newProvider = providerfactory.NewChatProvider
	// serveMetrics is a function alias to metrics.Serve.
	serveMetrics = metrics.Serve
)

// chatCmd represents the 'chat' command, which starts an interactive chat session.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat / test lab session",
	Long: `The 'chat' command starts an interactive session. In default mode messages go to the model
with the standing chat prompt; in test mode each experiment compares a generic and a specialized
prompt on the same input. Press tab to reach the action buttons.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(parent context.Context, cfg *appconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	provider, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize provider: %w", err)
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logging.LogEvent("provider shutdown error: %v", err)
		}
	}()

	startMetricsServer(ctx, cfg)

	controller := chat.NewController(cfg, provider, catalog, nil)
	session := chat.NewSession(cfg)
	logging.LogEvent("session %s created", session.ID)
	return startGUI(ctx, cfg, controller, session)
}

// loadCatalog returns the configured catalog file or the built-in cases.
func loadCatalog(cfg *appconfig.Config) (*testcases.Catalog, error) {
	if cfg.CatalogPath == "" {
		return testcases.Builtin(), nil
	}
	catalog, err := testcases.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	logging.LogEvent("loaded %d test cases from %s", catalog.Len(), cfg.CatalogPath)
	return catalog, nil
}

func startMetricsServer(ctx context.Context, cfg *appconfig.Config) {
	if !cfg.Metrics || cfg.MetricsAddr == "" {
		return
	}
	go func() {
		if err := serveMetrics(ctx, cfg.MetricsAddr); err != nil {
			logging.LogError("metrics server", err)
		}
	}()
}
