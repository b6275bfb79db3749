package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// DefaultHouseCanaryBaseURL is used when HOUSE_CANARY_API_BASE_URL is not set.
const DefaultHouseCanaryBaseURL = "https://api.housecanary.com"

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`

	HouseCanaryAPIBaseURL string        `mapstructure:"HOUSE_CANARY_API_BASE_URL"`
	HouseCanaryAPIKey     string        `mapstructure:"HOUSE_CANARY_API_KEY"`
	HouseCanaryAPISecret  string        `mapstructure:"HOUSE_CANARY_API_SECRET"`
	UpstreamTimeout       time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`

	APIUsername string `mapstructure:"API_USERNAME"`
	APIPassword string `mapstructure:"API_PASSWORD"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	RateLimitRPS    float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `mapstructure:"RATE_LIMIT_BURST"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// InboundAuthEnabled reports whether callers must present Basic credentials.
func (c *Config) InboundAuthEnabled() bool {
	return c.APIUsername != "" && c.APIPassword != ""
}

// LoadConfig reads configuration from app.env in path (if present) and the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("HOUSE_CANARY_API_BASE_URL", DefaultHouseCanaryBaseURL)
	v.SetDefault("HOUSE_CANARY_API_KEY", "")
	v.SetDefault("HOUSE_CANARY_API_SECRET", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")
	v.SetDefault("API_USERNAME", "")
	v.SetDefault("API_PASSWORD", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	cfg.HouseCanaryAPIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.HouseCanaryAPIBaseURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration can serve lookups.
func (c *Config) Validate() error {
	if c.HouseCanaryAPIKey == "" {
		return eris.New("config: HOUSE_CANARY_API_KEY is required")
	}
	if c.HouseCanaryAPISecret == "" {
		return eris.New("config: HOUSE_CANARY_API_SECRET is required")
	}
	if (c.APIUsername == "") != (c.APIPassword == "") {
		return eris.New("config: API_USERNAME and API_PASSWORD must be set together")
	}

	u, err := url.Parse(c.HouseCanaryAPIBaseURL)
	if err != nil {
		return eris.Wrap(err, "config: parse HOUSE_CANARY_API_BASE_URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return eris.Errorf("config: HOUSE_CANARY_API_BASE_URL must be an absolute URL, got %q", c.HouseCanaryAPIBaseURL)
	}

	if c.RateLimitRPS < 0 {
		return eris.New("config: RATE_LIMIT_RPS must be non-negative")
	}

	return nil
}
