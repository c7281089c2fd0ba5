// Package config loads planner settings from YAML files, .env files and
// LOANSIP_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"loan-sip-planner/domain"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Planner PlannerConfig `mapstructure:"planner"`
}

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RateLimit      int           `mapstructure:"rate_limit"` // requests per window
	RateWindow     time.Duration `mapstructure:"rate_window"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // LLM guidance included
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CacheConfig struct {
	Driver    string        `mapstructure:"driver"` // "memory" or "redis"
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PlannerConfig struct {
	FreedPayment       string `mapstructure:"freed_payment"`       // "redirect" or "keep-surplus"
	ContributionTiming string `mapstructure:"contribution_timing"` // "end" or "start"
}

// Policy converts the planner section into a projection policy.
func (p PlannerConfig) Policy() (domain.ProjectionPolicy, error) {
	policy := domain.ProjectionPolicy{
		FreedPayment: domain.FreedPaymentPolicy(p.FreedPayment),
		Timing:       domain.ContributionTiming(p.ContributionTiming),
	}
	if !policy.FreedPayment.IsValid() {
		return domain.ProjectionPolicy{}, fmt.Errorf("planner.freed_payment: unknown value %q", p.FreedPayment)
	}
	if !policy.Timing.IsValid() {
		return domain.ProjectionPolicy{}, fmt.Errorf("planner.contribution_timing: unknown value %q", p.ContributionTiming)
	}
	return policy, nil
}

// Load reads the configuration. Search order for config.yaml:
//  1. ./config
//  2. ~/.loansip
//
// A .env file in the working directory is loaded first if present.
// Environment variables override file values, e.g. LOANSIP_CACHE_DRIVER.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".loansip"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LOANSIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// OPENAI_API_KEY is honoured when no planner-specific key is set
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if _, err := cfg.Planner.Policy(); err != nil {
		return nil, err
	}
	if cfg.Server.RequestTimeout <= 0 {
		return nil, fmt.Errorf("server.request_timeout must be positive, got %s", cfg.Server.RequestTimeout)
	}
	if cfg.LLM.Timeout >= cfg.Server.RequestTimeout {
		return nil, fmt.Errorf("llm.timeout (%s) must be shorter than server.request_timeout (%s)", cfg.LLM.Timeout, cfg.Server.RequestTimeout)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("server.rate_window", time.Minute)
	v.SetDefault("server.request_timeout", 45*time.Second)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.api_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("planner.freed_payment", string(domain.FreedPaymentRedirect))
	v.SetDefault("planner.contribution_timing", string(domain.ContributionAtEnd))
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
