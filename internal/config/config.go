// Package config loads the service and CLI configuration from the environment and an optional config file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/groepsplan/internal/llm"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "GROEPSPLAN"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	LLM        LLMConfig
	Generation GenerationConfig
	Compliance ComplianceConfig
	Log        LogConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	if strings.HasPrefix(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// DatabaseConfig holds the PostgreSQL connection URL. An empty URL disables persistence.
type DatabaseConfig struct {
	URL string
}

// LLMConfig holds model settings.
type LLMConfig struct {
	APIKey      string
	Tier        llm.ModelTier
	Model       string // overrides the model of Tier when set
	Temperature float32
}

// ModelConfig returns the llm configuration for these settings.
func (c LLMConfig) ModelConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Temperature = c.Temperature
	if c.Model != "" {
		cfg = cfg.WithModel(c.Tier, c.Model)
	}
	return cfg
}

// GenerationConfig holds pipeline settings.
type GenerationConfig struct {
	MaxAttempts int
	Experiment  string // experiment used for automatic variant selection; empty disables it
	Timeout     time.Duration
}

// ComplianceConfig selects the compliance threshold.
type ComplianceConfig struct {
	Strict bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode string
}

// RateLimitConfig holds request limits. Limits are requests per window.
type RateLimitConfig struct {
	Enabled          bool
	DefaultRequests  int
	DefaultWindow    time.Duration
	GenerateRequests int
	GenerateWindow   time.Duration
	CleanupInterval  time.Duration
	Whitelist        []string
	Blacklist        []string
}

var envBindings = map[string][]string{
	"server.port":                 {"GROEPSPLAN_SERVER_PORT", "PORT"},
	"server.read_timeout":         {"GROEPSPLAN_SERVER_READ_TIMEOUT"},
	"server.write_timeout":        {"GROEPSPLAN_SERVER_WRITE_TIMEOUT"},
	"server.cors_origins":         {"GROEPSPLAN_SERVER_CORS_ORIGINS"},
	"database.url":                {"GROEPSPLAN_DATABASE_URL", "DATABASE_URL"},
	"llm.api_key":                 {"GROEPSPLAN_LLM_API_KEY", "GEMINI_API_KEY"},
	"llm.tier":                    {"GROEPSPLAN_LLM_TIER"},
	"llm.model":                   {"GROEPSPLAN_LLM_MODEL"},
	"llm.temperature":             {"GROEPSPLAN_LLM_TEMPERATURE"},
	"generation.max_attempts":     {"GROEPSPLAN_GENERATION_MAX_ATTEMPTS"},
	"generation.experiment":       {"GROEPSPLAN_GENERATION_EXPERIMENT"},
	"generation.timeout":          {"GROEPSPLAN_GENERATION_TIMEOUT"},
	"compliance.strict":           {"GROEPSPLAN_COMPLIANCE_STRICT"},
	"log.mode":                    {"GROEPSPLAN_LOG_MODE"},
	"jwt.secret":                  {"GROEPSPLAN_JWT_SECRET", "JWT_SECRET"},
	"jwt.expiration_hours":        {"GROEPSPLAN_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS"},
	"ratelimit.enabled":           {"GROEPSPLAN_RATELIMIT_ENABLED"},
	"ratelimit.default_requests":  {"GROEPSPLAN_RATELIMIT_DEFAULT_REQUESTS"},
	"ratelimit.default_window":    {"GROEPSPLAN_RATELIMIT_DEFAULT_WINDOW"},
	"ratelimit.generate_requests": {"GROEPSPLAN_RATELIMIT_GENERATE_REQUESTS"},
	"ratelimit.generate_window":   {"GROEPSPLAN_RATELIMIT_GENERATE_WINDOW"},
	"ratelimit.cleanup_interval":  {"GROEPSPLAN_RATELIMIT_CLEANUP_INTERVAL"},
	"ratelimit.whitelist":         {"GROEPSPLAN_RATELIMIT_WHITELIST"},
	"ratelimit.blacklist":         {"GROEPSPLAN_RATELIMIT_BLACKLIST"},
}

// Load reads configuration from GROEPSPLAN_* environment variables, merged over an optional
// YAML or JSON file. Environment variables win over the file, the file wins over defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	tier, err := llm.ParseTier(v.GetString("llm.tier"))
	if err != nil {
		return nil, fmt.Errorf("config error: llm.tier: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			CORSOrigins:  splitList(v.GetString("server.cors_origins")),
		},
		Database: DatabaseConfig{URL: v.GetString("database.url")},
		LLM: LLMConfig{
			APIKey:      v.GetString("llm.api_key"),
			Tier:        tier,
			Model:       v.GetString("llm.model"),
			Temperature: float32(v.GetFloat64("llm.temperature")),
		},
		Generation: GenerationConfig{
			MaxAttempts: v.GetInt("generation.max_attempts"),
			Experiment:  v.GetString("generation.experiment"),
			Timeout:     v.GetDuration("generation.timeout"),
		},
		Compliance: ComplianceConfig{Strict: v.GetBool("compliance.strict")},
		Log:        LogConfig{Mode: v.GetString("log.mode")},
		JWT: JWTConfig{
			Secret:          v.GetString("jwt.secret"),
			ExpirationHours: v.GetInt("jwt.expiration_hours"),
		},
		RateLimit: RateLimitConfig{
			Enabled:          v.GetBool("ratelimit.enabled"),
			DefaultRequests:  v.GetInt("ratelimit.default_requests"),
			DefaultWindow:    v.GetDuration("ratelimit.default_window"),
			GenerateRequests: v.GetInt("ratelimit.generate_requests"),
			GenerateWindow:   v.GetDuration("ratelimit.generate_window"),
			CleanupInterval:  v.GetDuration("ratelimit.cleanup_interval"),
			Whitelist:        splitList(v.GetString("ratelimit.whitelist")),
			Blacklist:        splitList(v.GetString("ratelimit.blacklist")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "5m")
	v.SetDefault("server.cors_origins", "*")

	v.SetDefault("database.url", "")

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.tier", string(llm.TierAdvanced))
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", llm.DefaultTemperature)

	v.SetDefault("generation.max_attempts", 3)
	v.SetDefault("generation.experiment", "")
	v.SetDefault("generation.timeout", "3m")

	v.SetDefault("compliance.strict", false)
	v.SetDefault("log.mode", "development")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 24)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.default_requests", 60)
	v.SetDefault("ratelimit.default_window", "1m")
	v.SetDefault("ratelimit.generate_requests", 5)
	v.SetDefault("ratelimit.generate_window", "1m")
	v.SetDefault("ratelimit.cleanup_interval", "5m")
	v.SetDefault("ratelimit.whitelist", "")
	v.SetDefault("ratelimit.blacklist", "")
}

// Validate checks that the configuration has usable values.
// Secrets are not required here; the commands that need them check for them.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("config error: 'server.port' must not be empty")
	}
	if c.Generation.MaxAttempts < 1 {
		return fmt.Errorf("config error: 'generation.max_attempts' must be at least 1, got %d", c.Generation.MaxAttempts)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: 'llm.temperature' must be between 0.0 and 2.0, got %g", c.LLM.Temperature)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultRequests < 1 || c.RateLimit.GenerateRequests < 1 {
			return fmt.Errorf("config error: rate limits must allow at least 1 request")
		}
		if c.RateLimit.DefaultWindow <= 0 || c.RateLimit.GenerateWindow <= 0 {
			return fmt.Errorf("config error: rate limit windows must be positive")
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
