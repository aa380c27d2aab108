// Package config loads application configuration from file and
// environment and owns global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Places    PlacesConfig    `yaml:"places" mapstructure:"places"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Resolver  ResolverConfig  `yaml:"resolver" mapstructure:"resolver"`
	Confirm   ConfirmConfig   `yaml:"confirm" mapstructure:"confirm"`
	Gazetteer GazetteerConfig `yaml:"gazetteer" mapstructure:"gazetteer"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the sqlite store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PlacesConfig holds Places API settings.
type PlacesConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SearchConfig holds the web-search API settings for the fallback path.
type SearchConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings for incident extraction.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ResolverConfig configures external-call behavior and caching.
type ResolverConfig struct {
	CallDelayMillis int  `yaml:"call_delay_millis" mapstructure:"call_delay_millis"`
	MaxCalls        int  `yaml:"max_calls" mapstructure:"max_calls"`
	CacheTTLMinutes int  `yaml:"cache_ttl_minutes" mapstructure:"cache_ttl_minutes"`
	CacheToStore    bool `yaml:"cache_to_store" mapstructure:"cache_to_store"`
}

// ConfirmConfig exposes the scoring rubric values.
type ConfirmConfig struct {
	QualityHigh   int `yaml:"quality_high" mapstructure:"quality_high"`
	QualityMedium int `yaml:"quality_medium" mapstructure:"quality_medium"`
	QualityLow    int `yaml:"quality_low" mapstructure:"quality_low"`
	BusinessBonus int `yaml:"business_bonus" mapstructure:"business_bonus"`
	CityBonus     int `yaml:"city_bonus" mapstructure:"city_bonus"`
	StateBonus    int `yaml:"state_bonus" mapstructure:"state_bonus"`
	CityStateCap  int `yaml:"city_state_cap" mapstructure:"city_state_cap"`
	StreetBonus   int `yaml:"street_bonus" mapstructure:"street_bonus"`
	Floor         int `yaml:"floor" mapstructure:"floor"`
	HighTier      int `yaml:"high_tier" mapstructure:"high_tier"`
}

// GazetteerConfig points at an optional vocabulary overlay file.
type GazetteerConfig struct {
	OverlayPath string `yaml:"overlay_path" mapstructure:"overlay_path"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Workers       int `yaml:"workers" mapstructure:"workers"`
	BudgetMinutes int `yaml:"budget_minutes" mapstructure:"budget_minutes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path
// searches the working directory for config.yaml; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "leadscout.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("search.base_url", "https://s.jina.ai")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("resolver.call_delay_millis", 200)
	v.SetDefault("resolver.max_calls", 3)
	v.SetDefault("resolver.cache_ttl_minutes", 60)
	v.SetDefault("resolver.cache_to_store", true)
	v.SetDefault("confirm.quality_high", 3)
	v.SetDefault("confirm.quality_medium", 2)
	v.SetDefault("confirm.quality_low", 1)
	v.SetDefault("confirm.business_bonus", 3)
	v.SetDefault("confirm.city_bonus", 2)
	v.SetDefault("confirm.state_bonus", 1)
	v.SetDefault("confirm.city_state_cap", 3)
	v.SetDefault("confirm.street_bonus", 3)
	v.SetDefault("confirm.floor", 3)
	v.SetDefault("confirm.high_tier", 6)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.budget_minutes", 30)

	// The file is optional only when searching; a named file must load.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
