package appconfig

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the current configuration summary. With raw set, the whole
// snapshot is pretty-printed instead (API key masked).
func ShowConfig(out io.Writer, cfg *Config, raw bool) {
	if cfg == nil {
		fmt.Fprintln(out, "No configuration loaded.")
		return
	}
	if cfg.ConfigPath == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults and environment).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", cfg.ConfigPath)
	}

	if raw {
		masked := *cfg
		masked.APIKey = cfg.MaskedAPIKey()
		pp.Fprintln(out, masked)
		return
	}

	chat := cfg.ChatSettings()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Mode:            %s\n", cfg.Mode)
	fmt.Fprintf(out, "  Auto Test:       %v\n", cfg.AutoTest)
	fmt.Fprintf(out, "  Provider:        %s\n", cfg.Provider)
	fmt.Fprintf(out, "  Model:           %s\n", cfg.Model)
	if cfg.BaseURL != "" {
		fmt.Fprintf(out, "  Base URL:        %s\n", cfg.BaseURL)
	}
	fmt.Fprintf(out, "  API Key:         %s\n", cfg.MaskedAPIKey())
	fmt.Fprintf(out, "  Timeout:         %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Metrics:         %v\n", cfg.Metrics)
	if cfg.MetricsAddr != "" {
		fmt.Fprintf(out, "  Metrics Addr:    %s\n", cfg.MetricsAddr)
	}
	if cfg.CatalogPath != "" {
		fmt.Fprintf(out, "  Catalog:         %s\n", cfg.CatalogPath)
	}
	if cfg.ExportPath != "" {
		fmt.Fprintf(out, "  Export:          %s\n", cfg.ExportPath)
	}
	if cfg.ExportMarkdownPath != "" {
		fmt.Fprintf(out, "  Export Markdown: %s\n", cfg.ExportMarkdownPath)
	}
	fmt.Fprintln(out, "  Chat Settings:")
	for _, key := range ParamKeys {
		if v, ok := chat.Lookup(key); ok {
			fmt.Fprintf(out, "    %-18s %v\n", ParamDisplayName(key)+":", v)
		} else {
			fmt.Fprintf(out, "    %-18s n/a\n", ParamDisplayName(key)+":")
		}
	}
}
