package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	FDC    FDCConfig
	Cache  CacheConfig
	Store  StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FDCConfig holds food composition API configuration
type FDCConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds the food record cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Path             string        `mapstructure:"path"`
	DebounceInterval time.Duration `mapstructure:"debounce_interval"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutrifactor/")

	v.SetEnvPrefix("NUTRIFACTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults carry the rest
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("fdc.base_url", "https://api.nal.usda.gov/fdc")

	v.SetDefault("cache.ttl", "720h") // 30 days

	v.SetDefault("store.path", "nutrifactor.db")
	v.SetDefault("store.debounce_interval", "800ms")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.FDC.APIKey == "" {
		return fmt.Errorf("food composition API key is required (set NUTRIFACTOR_FDC_API_KEY)")
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store path must not be empty")
	}

	if config.Store.DebounceInterval <= 0 {
		return fmt.Errorf("store debounce interval must be positive, got: %s", config.Store.DebounceInterval)
	}

	return nil
}
