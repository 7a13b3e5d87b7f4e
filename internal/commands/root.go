// internal/commands/root.go

// Package commands holds the promptlab cobra command tree and turns flags,
// environment and an optional config file into the startup configuration
// snapshot.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	dotenvErr     error
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// envBindings maps config keys onto the environment variables that set them.
var envBindings = map[string]string{
	"mode":     "APP_MODE",
	"autoTest": "APP_AUTO_TEST",
	"apiKey":   "OPENAI_API_KEY",
	"model":    "OPENAI_MODEL",
	"baseURL":  "OPENAI_BASE_URL",
	"provider": "PROMPTLAB_PROVIDER",
}

// rootCmd represents the base command when called without any subcommands.
// On its own it starts the interactive lab, like 'promptlab chat'.
var rootCmd = &cobra.Command{
	Use:          "promptlab",
	Short:        "promptlab — chat with an LLM and compare generic vs. specialized prompts",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dotenvErr != nil {
			return fmt.Errorf("load .env: %w", dotenvErr)
		}
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Normalize(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.LogEvent("promptlab %s starting: mode=%s provider=%s model=%s", appVersion, cfg.Mode, cfg.Provider, cfg.Model)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), GetConfig())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")

	rootCmd.PersistentFlags().String("mode", "", "session mode: default or test (env APP_MODE)")
	rootCmd.PersistentFlags().Bool("autoTest", false, "in test mode, run every experiment at startup (env APP_AUTO_TEST)")
	rootCmd.PersistentFlags().String("model", "", "model identifier (env OPENAI_MODEL)")
	rootCmd.PersistentFlags().String("provider", "", "completion transport: openai or llama.cpp (env PROMPTLAB_PROVIDER)")
	rootCmd.PersistentFlags().String("baseURL", "", "OpenAI-compatible endpoint (env OPENAI_BASE_URL)")
	rootCmd.PersistentFlags().Int("timeout", 0, "request timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("metrics", false, "record Prometheus metrics for completions")
	rootCmd.PersistentFlags().String("metricsAddr", "", "serve /metrics on this address (e.g. :9090)")
	rootCmd.PersistentFlags().String("export", "", "append comparison runs to this JSON file")
	rootCmd.PersistentFlags().String("exportMarkdown", "", "append comparison reports to this Markdown file")
	rootCmd.PersistentFlags().String("catalog", "", "YAML file replacing the built-in test cases")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	for _, name := range []string{
		"mode", "autoTest", "model", "provider", "baseURL", "timeout", "debug",
		"metrics", "metricsAddr", "export", "exportMarkdown", "catalog", "logFile",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	for key, env := range envBindings {
		_ = viper.BindEnv(key, env)
	}

	viper.SetDefault("mode", string(appconfig.ModeDefault))
	viper.SetDefault("model", appconfig.DefaultModel)
	viper.SetDefault("provider", appconfig.DefaultProvider)
}

// initConfig loads .env and points viper at the config file if one was given.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		dotenvErr = err
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file when one is set. Running without
// a config file is normal.
func ensureConfigLoaded() error {
	if cfgFile == "" {
		return nil
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
