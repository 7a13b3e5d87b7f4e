// internal/appconfig/appconfig.go
// Package appconfig holds the immutable startup configuration snapshot and the
// sampling settings types shared by the chat and comparison flows.
package appconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultModel is the model identifier used when none is configured.
	DefaultModel = "gpt-3.5-turbo"
	// DefaultProvider selects the hosted OpenAI transport.
	DefaultProvider = ProviderOpenAI
	// defaultRequestTimeout is the default timeout for completion requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultLogFile is used when no log file is configured.
	defaultLogFile = "promptlab.log"
)

// Canonical provider names.
const (
	ProviderOpenAI   = "openai"
	ProviderLlamaCpp = "llama.cpp"
)

// ErrInvalidMode is returned when a mode string is neither "default" nor "test".
var ErrInvalidMode = errors.New("invalid mode")

// Mode is the conversational mode of a session.
type Mode string

const (
	// ModeDefault routes user messages to plain chat.
	ModeDefault Mode = "default"
	// ModeTest routes user messages to the comparison flow.
	ModeTest Mode = "test"
)

// ParseMode normalizes and validates a mode string. An empty string yields ModeDefault.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "chat":
		return ModeDefault, nil
	case "test":
		return ModeTest, nil
	default:
		return "", fmt.Errorf("%w %q (expected \"default\" or \"test\")", ErrInvalidMode, s)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeTest {
		return ModeDefault
	}
	return ModeTest
}

// String implements fmt.Stringer.
func (m Mode) String() string { return string(m) }

// Config represents the top-level application configuration.
type Config struct {
	Mode               Mode     `mapstructure:"mode" json:"mode"`
	AutoTest           bool     `mapstructure:"autoTest" json:"autoTest"`
	APIKey             string   `mapstructure:"apiKey" json:"-"`
	Model              string   `mapstructure:"model" json:"model"`
	BaseURL            string   `mapstructure:"baseURL" json:"baseURL,omitempty"`
	Provider           string   `mapstructure:"provider" json:"provider"`
	TimeoutSeconds     int      `mapstructure:"timeout" json:"timeout,omitempty"`
	LogFile            string   `mapstructure:"logFile" json:"logFile,omitempty"`
	Debug              bool     `mapstructure:"debug" json:"debug"`
	Metrics            bool     `mapstructure:"metrics" json:"metrics"`
	MetricsAddr        string   `mapstructure:"metricsAddr" json:"metricsAddr,omitempty"`
	ExportPath         string   `mapstructure:"export" json:"export,omitempty"`
	ExportMarkdownPath string   `mapstructure:"exportMarkdown" json:"exportMarkdown,omitempty"`
	CatalogPath        string   `mapstructure:"catalog" json:"catalog,omitempty"`
	Chat               Settings `mapstructure:"chat" json:"chat"`
	ConfigPath         string   `mapstructure:"-" json:"-"`
}

// Normalize applies defaults and validates the mode. It is called once after the
// configuration sources have been merged.
func (c *Config) Normalize() error {
	mode, err := ParseMode(string(c.Mode))
	if err != nil {
		return err
	}
	c.Mode = mode
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}
	c.Provider = NormalizeProvider(c.Provider)
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}
	return nil
}

// RequestTimeout returns the timeout duration for completion requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// ChatSettings returns the chat preset with any configured overrides applied.
func (c Config) ChatSettings() Settings {
	return MergeSettings(ChatPreset(), c.Chat)
}

// MaskedAPIKey returns the API key with everything but the last four characters hidden.
func (c Config) MaskedAPIKey() string {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

// NormalizeProvider maps provider aliases onto their canonical names.
func NormalizeProvider(provider string) string {
	normalized := strings.ToLower(strings.TrimSpace(provider))
	switch normalized {
	case "", ProviderOpenAI:
		return DefaultProvider
	case ProviderLlamaCpp, "llamacpp", "local":
		return ProviderLlamaCpp
	default:
		return normalized
	}
}
