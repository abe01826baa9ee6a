// Package config handles configuration loading for MarketMood.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	NewsAPI    NewsAPIConfig    `mapstructure:"newsapi"    yaml:"newsapi"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"   yaml:"analysis"`
	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier"`
	HTTP       HTTPConfig       `mapstructure:"http"       yaml:"http"`
	Cache      CacheConfig      `mapstructure:"cache"      yaml:"cache"`
	API        APIConfig        `mapstructure:"api"        yaml:"api"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// NewsAPIConfig holds newsapi.org settings.
type NewsAPIConfig struct {
	Key      string `mapstructure:"key"       yaml:"key"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
}

// AnalysisConfig holds the verdict-pipeline knobs.
type AnalysisConfig struct {
	MaxArticles   int     `mapstructure:"max_articles"    yaml:"max_articles"`
	HalfLifeHours float64 `mapstructure:"half_life_hours" yaml:"half_life_hours"`
	GeneralQuery  string  `mapstructure:"general_query"   yaml:"general_query"`
}

// ClassifierConfig selects the sentiment classifier backend.
type ClassifierConfig struct {
	Mode  string `mapstructure:"mode"  yaml:"mode"` // "keyword" or "remote"
	URL   string `mapstructure:"url"   yaml:"url"`
	Model string `mapstructure:"model" yaml:"model"`
}

// HTTPConfig holds outbound HTTP client settings.
type HTTPConfig struct {
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// CacheConfig bounds the three memo caches.
type CacheConfig struct {
	ResolverSize int `mapstructure:"resolver_size" yaml:"resolver_size"`
	SnapshotSize int `mapstructure:"snapshot_size" yaml:"snapshot_size"`
	NewsSize     int `mapstructure:"news_size"     yaml:"news_size"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.marketmood/config.yaml (home directory)
//  3. /etc/marketmood/config.yaml (system)
//
// Environment variables override config file values.
// Format: MARKETMOOD_<SECTION>_<KEY>, e.g., MARKETMOOD_NEWSAPI_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".marketmood"))
	v.AddConfigPath("/etc/marketmood")

	v.SetEnvPrefix("MARKETMOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not required to exist; defaults + env vars suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("MARKETMOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// NewsAPI defaults (key intentionally unset)
	v.SetDefault("newsapi.page_size", 100)

	// Analysis defaults
	v.SetDefault("analysis.max_articles", 7)
	v.SetDefault("analysis.half_life_hours", 72.0)
	v.SetDefault("analysis.general_query", "NIFTY 50 OR Sensex")

	// Classifier defaults
	v.SetDefault("classifier.mode", "keyword")
	v.SetDefault("classifier.model", "ProsusAI/finbert")

	// Outbound HTTP defaults
	v.SetDefault("http.timeout_sec", 5)

	// Cache bounds
	v.SetDefault("cache.resolver_size", 512)
	v.SetDefault("cache.snapshot_size", 128)
	v.SetDefault("cache.news_size", 256)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("MARKETMOOD_NEWSAPI_KEY"); key != "" {
		cfg.NewsAPI.Key = key
	}
	if url := os.Getenv("MARKETMOOD_CLASSIFIER_URL"); url != "" {
		cfg.Classifier.URL = url
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
