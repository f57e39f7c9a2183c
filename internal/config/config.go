// Package config loads server configuration from file and environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Auth   AuthConfig   `mapstructure:"auth"`
	AI     AIConfig     `mapstructure:"ai"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type AuthConfig struct {
	JWTKey        string        `mapstructure:"jwt_key"`
	AccessTTL     time.Duration `mapstructure:"access_ttl"`
	LoginWindow   time.Duration `mapstructure:"login_window"`
	LoginMaxFails int           `mapstructure:"login_max_fails"`
	LoginBlockFor time.Duration `mapstructure:"login_block_for"`
}

type AIConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// Load reads the config file at path (optional) with environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "smart-notes")
	v.SetDefault("auth.access_ttl", 7*24*time.Hour)
	v.SetDefault("auth.login_window", 15*time.Minute)
	v.SetDefault("auth.login_max_fails", 5)
	v.SetDefault("auth.login_block_for", 15*time.Minute)
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 150)
	v.SetDefault("ai.temperature", 0.7)

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Well-known environment variables win over the file.
	if uri := v.GetString("MONGO_URI"); uri != "" {
		cfg.Mongo.URI = uri
	}
	if key := v.GetString("JWT_SECRET"); key != "" {
		cfg.Auth.JWTKey = key
	}
	if key := v.GetString("OPENAI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}

	return &cfg, nil
}
