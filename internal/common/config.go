package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	OpenDART    OpenDARTConfig `toml:"opendart"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
	Web         WebConfig      `toml:"web"`
	Logging     LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Port         int    `toml:"port"`
	Host         string `toml:"host"`
	ReadTimeout  string `toml:"read_timeout"`  // default: "15s"
	WriteTimeout string `toml:"write_timeout"` // default: "90s", must cover the narrative provider timeout
	IdleTimeout  string `toml:"idle_timeout"`  // default: "60s"
}

// Addr returns the listen address in host:port form
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type StorageConfig struct {
	SQLite SQLiteConfig `toml:"sqlite"`
}

// SQLiteConfig represents the company directory database settings
type SQLiteConfig struct {
	Path          string `toml:"path"`            // Path to companies.db
	CacheSizeMB   int    `toml:"cache_size_mb"`   // Page cache size
	BusyTimeoutMS int    `toml:"busy_timeout_ms"` // Busy timeout in milliseconds
	WALMode       bool   `toml:"wal_mode"`        // Enable write-ahead logging
}

// OpenDARTConfig contains the disclosure API settings
type OpenDARTConfig struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	Timeout         string `toml:"timeout"`          // Per-call HTTP timeout (default: "10s")
	RequestInterval string `toml:"request_interval"` // Minimum spacing between calls (default: "100ms")
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`       // default: "gemini-2.0-flash"
	Timeout     string  `toml:"timeout"`     // default: "60s"
	Temperature float32 `toml:"temperature"` // default: 0.7
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Timeout     string  `toml:"timeout"`
	Temperature float32 `toml:"temperature"`
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the narrative provider
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"`
}

// WebConfig points at the front-end assets served on "/"
type WebConfig struct {
	Dir string `toml:"dir"` // Directory holding index.html and static/
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // default: "15:04:05"
}

// NewDefaultConfig returns the configuration used when no file overrides a value
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:         5000,
			Host:         "0.0.0.0",
			ReadTimeout:  "15s",
			WriteTimeout: "90s",
			IdleTimeout:  "60s",
		},
		Storage: StorageConfig{
			SQLite: SQLiteConfig{
				Path:          "./companies.db",
				CacheSizeMB:   16,
				BusyTimeoutMS: 5000,
				WALMode:       false,
			},
		},
		OpenDART: OpenDARTConfig{
			BaseURL:         "https://opendart.fss.or.kr/api",
			Timeout:         "10s",
			RequestInterval: "100ms",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Timeout:     "60s",
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			Model:       "claude-3-5-haiku-20241022",
			MaxTokens:   4096,
			Timeout:     "60s",
			Temperature: 0.7,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Web: WebConfig{
			Dir: "./web",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> files (in order) -> .env -> env vars.
// Command-line overrides are applied separately via ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Later files override earlier ones
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// .env never overrides variables already present in the environment
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies DARTVIEW_* environment variables to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DARTVIEW_ENV"); env != "" {
		config.Environment = env
	}

	// PORT is kept for platforms that inject it
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if port := os.Getenv("DARTVIEW_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DARTVIEW_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if path := os.Getenv("DARTVIEW_SQLITE_PATH"); path != "" {
		config.Storage.SQLite.Path = path
	}

	if baseURL := os.Getenv("DARTVIEW_OPENDART_BASE_URL"); baseURL != "" {
		config.OpenDART.BaseURL = baseURL
	}
	if timeout := os.Getenv("DARTVIEW_OPENDART_TIMEOUT"); timeout != "" {
		config.OpenDART.Timeout = timeout
	}

	if model := os.Getenv("DARTVIEW_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if model := os.Getenv("DARTVIEW_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if provider := os.Getenv("DARTVIEW_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(provider))
	}

	if dir := os.Getenv("DARTVIEW_WEB_DIR"); dir != "" {
		config.Web.Dir = dir
	}

	if level := os.Getenv("DARTVIEW_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DARTVIEW_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// apiKeyEnv lists the environment variables checked for each named key, in priority order
var apiKeyEnv = map[string][]string{
	"opendart_api_key":  {"DARTVIEW_OPENDART_API_KEY", "OPENDART_API_KEY"},
	"gemini_api_key":    {"DARTVIEW_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"anthropic_api_key": {"DARTVIEW_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
}

// ResolveAPIKey resolves an API key by name.
// Resolution order: environment variables -> config fallback -> error
func ResolveAPIKey(name string, configFallback string) (string, error) {
	for _, envName := range apiKeyEnv[name] {
		if value := os.Getenv(envName); value != "" {
			return value, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// ParseDurationOr parses a duration string, returning fallback when empty or invalid
func ParseDurationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
