// Package config loads the mediadesk configuration from a YAML file and
// MEDIADESK_* environment variables, with sensible defaults for every knob.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Remote RemoteConfig `mapstructure:"remote"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Search SearchConfig `mapstructure:"search"`
	Editor EditorConfig `mapstructure:"editor"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RemoteConfig configures the upstream API client.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig configures the resource caches.
type CacheConfig struct {
	ListTTL  time.Duration `mapstructure:"list_ttl"`
	ByIDSize int           `mapstructure:"by_id_size"`
}

// SearchConfig configures the autocomplete debouncer.
type SearchConfig struct {
	MinQueryLength int           `mapstructure:"min_query_length"`
	Interval       time.Duration `mapstructure:"interval"`
	MaxSuggestions int           `mapstructure:"max_suggestions"`
}

// EditorConfig configures the streaming edit sessions.
type EditorConfig struct {
	// Provider selects the generation transport: "sse", "websocket" or
	// "scripted" (testing).
	Provider    string        `mapstructure:"provider"`
	GenerateURL string        `mapstructure:"generate_url"`
	TokenBudget int           `mapstructure:"token_budget"`
	WarningTTL  time.Duration `mapstructure:"warning_ttl"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file (optional), the working
// directory, and MEDIADESK_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("mediadesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.mediadesk")
	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("MEDIADESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; an explicit path must exist.
		var notFound viper.ConfigFileNotFoundError
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8790)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("remote.base_url", "http://127.0.0.1:8790")
	v.SetDefault("remote.timeout", 15*time.Second)

	v.SetDefault("cache.list_ttl", 30*time.Second)
	v.SetDefault("cache.by_id_size", 512)

	v.SetDefault("search.min_query_length", 2)
	v.SetDefault("search.interval", 250*time.Millisecond)
	v.SetDefault("search.max_suggestions", 8)

	v.SetDefault("editor.provider", "sse")
	v.SetDefault("editor.generate_url", "http://127.0.0.1:8790/api/generate")
	v.SetDefault("editor.token_budget", 2000)
	v.SetDefault("editor.warning_ttl", 3*time.Second)

	v.SetDefault("log.level", "info")
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("config: remote.base_url is required")
	}
	switch c.Editor.Provider {
	case "sse", "websocket", "scripted":
	default:
		return fmt.Errorf("config: editor.provider %q must be sse, websocket or scripted", c.Editor.Provider)
	}
	if c.Cache.ByIDSize <= 0 {
		return fmt.Errorf("config: cache.by_id_size must be > 0")
	}
	return nil
}
