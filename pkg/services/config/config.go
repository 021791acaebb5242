// Package config loads and validates the service configuration once at
// startup; nothing reads configuration ad hoc after that.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/seller-atlas/pkg/store/market"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CollectorConfig struct {
	PageSize    int `mapstructure:"page_size"`
	MaxSpanDays int `mapstructure:"max_span_days"`
}

type RefreshConfig struct {
	// Cron is a cron expression; empty disables the scheduled refresh.
	Cron      string `mapstructure:"cron"`
	RangeDays int    `mapstructure:"range_days"`
}

type TrackerConfig struct {
	// Path to the sqlite database; empty disables call tracking.
	Path string `mapstructure:"path"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Market    market.Config   `mapstructure:"market"`
	Collector CollectorConfig `mapstructure:"collector"`
	Refresh   RefreshConfig   `mapstructure:"refresh"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("collector.page_size", 200)
	v.SetDefault("collector.max_span_days", 120)
	v.SetDefault("refresh.range_days", 120)
	v.SetDefault("market.timeout", "30s")
	v.SetDefault("market.retry_max", 3)

	v.SetEnvPrefix("SELLER_ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Market.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
