package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rgehrsitz/mortgo/internal/cache"
	"github.com/rgehrsitz/mortgo/internal/logging"
)

const (
	EnvPrefix          = "MORTGO"
	DefaultAddress     = ":8080"
	DefaultServiceName = "mortgo"
	DefaultRateLimit   = 20.0
	DefaultRateBurst   = 40
	DefaultMaxBodySize = 64 * 1024
)

// ServiceConfig holds runtime parameters for the HTTP service
type ServiceConfig struct {
	Address      string         `mapstructure:"address"`
	ServiceName  string         `mapstructure:"service_name"`
	RateLimit    float64        `mapstructure:"rate_limit"` // requests per second, 0 disables limiting
	RateBurst    int            `mapstructure:"rate_burst"`
	MaxBodySize  int64          `mapstructure:"max_body_size"`
	OTelEndpoint string         `mapstructure:"otel_endpoint"`
	Cache        cache.Config   `mapstructure:"cache"`
	Logging      logging.Config `mapstructure:"logging"`
}

// LoadServiceConfig reads service settings from defaults, an optional config
// file and MORTGO_* environment variables, in increasing precedence. Any
// envFiles are loaded into the environment first; missing files are ignored.
func LoadServiceConfig(path string, envFiles ...string) (*ServiceConfig, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("address", DefaultAddress)
	v.SetDefault("service_name", DefaultServiceName)
	v.SetDefault("rate_limit", DefaultRateLimit)
	v.SetDefault("rate_burst", DefaultRateBurst)
	v.SetDefault("max_body_size", DefaultMaxBodySize)
	v.SetDefault("otel_endpoint", "")
	v.SetDefault("cache.backend", cache.BackendMemory)
	v.SetDefault("cache.ttl", cache.DefaultTTL)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_file", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading service config %s: %w", path, err)
		}
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode service config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the service settings
func (c *ServiceConfig) Validate() error {
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("address is required")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative")
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("rate burst must be positive when rate limiting is enabled")
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = DefaultMaxBodySize
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = cache.DefaultTTL
	}
	return nil
}
