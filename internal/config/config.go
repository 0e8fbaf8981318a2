package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Public identity of this agent, used in the discovery document.
	AgentBaseURL string `mapstructure:"AGENT_BASE_URL"`
	AgentName    string `mapstructure:"AGENT_NAME"`

	// Upstream golf API
	UpstreamBaseURL         string        `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeout         time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	CircuitBreakerCooldown  time.Duration `mapstructure:"CIRCUIT_BREAKER_COOLDOWN"`

	// Usage tracking
	UsageTrackingEnabled bool   `mapstructure:"USAGE_TRACKING_ENABLED"`
	RedisURL             string `mapstructure:"REDIS_URL"`

	// Static assets
	IconPath string `mapstructure:"ICON_PATH"`
}

func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("AGENT_BASE_URL", "http://localhost:3000")
	viper.SetDefault("AGENT_NAME", "golf-agent")
	viper.SetDefault("UPSTREAM_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/golf")
	viper.SetDefault("UPSTREAM_TIMEOUT", "30s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("CIRCUIT_BREAKER_COOLDOWN", "60s")
	viper.SetDefault("USAGE_TRACKING_ENABLED", true)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ICON_PATH", "assets/icon.png")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
