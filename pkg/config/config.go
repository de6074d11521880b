package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Sampler SamplerConfig `mapstructure:"sampler"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
	Workers int           `mapstructure:"workers"`
}

type ServerConfig struct {
	ListenAddr   string   `mapstructure:"listen_addr"`
	CorsOrigins  []string `mapstructure:"cors_origins"`
	RateLimit    bool     `mapstructure:"rate_limit"`
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
}

type SamplerConfig struct {
	MaxWaypoints int     `mapstructure:"max_waypoints"`
	MinTurnAngle float64 `mapstructure:"min_turn_angle"`
}

type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Path         string        `mapstructure:"path"`
	InMemory     bool          `mapstructure:"in_memory"`
	TTL          time.Duration `mapstructure:"ttl"`
	H3Resolution int           `mapstructure:"h3_resolution"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"` // empty: stderr only
}

// Load reads configuration from defaults, an optional yaml file and NAVSAMPLER_* environment variables.
// configFile overrides the ./config.yaml and ./configs/config.yaml lookup.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.listen_addr", ":5000")
	v.SetDefault("server.cors_origins", []string{"https://*", "http://*"})
	v.SetDefault("server.rate_limit", false)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("sampler.max_waypoints", 23)
	v.SetDefault("sampler.min_turn_angle", 30.0)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "./navsampler_cache")
	v.SetDefault("cache.in_memory", false)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.h3_resolution", 7)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("workers", 8)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// NAVSAMPLER_SAMPLER_MAX_WAYPOINTS → sampler.max_waypoints
	v.SetEnvPrefix("NAVSAMPLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Server.ListenAddr == "" {
		errs = append(errs, "server.listen_addr is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Sampler.MaxWaypoints <= 0 {
		errs = append(errs, fmt.Sprintf("sampler.max_waypoints must be positive, got %d", c.Sampler.MaxWaypoints))
	}
	if c.Sampler.MinTurnAngle < 0 || c.Sampler.MinTurnAngle > 180 {
		errs = append(errs, fmt.Sprintf("sampler.min_turn_angle must be 0-180, got %g", c.Sampler.MinTurnAngle))
	}
	if c.Cache.Enabled && !c.Cache.InMemory && c.Cache.Path == "" {
		errs = append(errs, "cache.path is required unless cache.in_memory is set")
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, "cache.ttl must not be negative")
	}
	if c.Cache.H3Resolution < 0 || c.Cache.H3Resolution > 15 {
		errs = append(errs, fmt.Sprintf("cache.h3_resolution must be 0-15, got %d", c.Cache.H3Resolution))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Sprintf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Workers <= 0 {
		errs = append(errs, "workers must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
