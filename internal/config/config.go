// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AuthConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"`
	SessionTTL         time.Duration `yaml:"session_ttl"`
	SuperadminPassword string        `yaml:"superadmin_password"`
}

type RateLimitConfig struct {
	RedeemPerHour int `yaml:"redeem_per_hour"` // per-user redemption attempts
}

type SchedulerConfig struct {
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type SecurityConfig struct {
	EncryptionKey string `yaml:"encryption_key"`
}

type I18nConfig struct {
	DefaultLocale string `yaml:"default_locale"` // id|en
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Security  SecurityConfig  `yaml:"security"`
	I18n      I18nConfig      `yaml:"i18n"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig() (*Config, error) {
	var configPath string
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 7 * 24 * time.Hour
	}
	if cfg.RateLimit.RedeemPerHour <= 0 {
		cfg.RateLimit.RedeemPerHour = 10
	}
	if cfg.Scheduler.SweepInterval <= 0 {
		cfg.Scheduler.SweepInterval = 5 * time.Minute
	}
	if cfg.I18n.DefaultLocale == "" {
		cfg.I18n.DefaultLocale = "id"
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	if cfg.Auth.SuperadminPassword == "" {
		return nil, errors.New("auth.superadmin_password is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
