// internal/commands/compare.go
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/comparison"
	"github.com/mwiater/promptlab/internal/logging"
	"github.com/mwiater/promptlab/internal/render"
)

var compareInput string

// compareCmd runs one comparison and prints the report.
var compareCmd = &cobra.Command{
	Use:   "compare <test-key>",
	Short: "Run one prompt comparison and print the report",
	Long: `The 'compare' command runs the generic and the specialized prompt of one test case
against the same input (the case's example unless --input is given) and prints the
markdown report to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runCompare(ctx, cmd, GetConfig(), args[0], compareInput)
	},
}

func init() {
	compareCmd.Flags().StringVarP(&compareInput, "input", "i", "", "input text (defaults to the test case example)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(ctx context.Context, cmd *cobra.Command, cfg *appconfig.Config, key, input string) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	tc, err := catalog.Lookup(key)
	if err != nil {
		return err
	}
	if input == "" {
		input = tc.Example
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

	orch := comparison.New(provider, cfg.Model)
	if exp := comparison.NewFileExporter(cfg.ExportPath, cfg.ExportMarkdownPath); exp != nil {
		orch.Exporter = exp
	}

	console := render.NewConsole(cmd.OutOrStdout())
	sink, err := console.Stream(ctx)
	if err != nil {
		return err
	}
	_, err = orch.Compare(ctx, input, tc, sink)
	return err
}
