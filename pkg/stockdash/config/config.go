package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// WikipediaSP500URL is the default universe listing.
const WikipediaSP500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// Config is the full runtime configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Market   MarketConfig   `mapstructure:"market"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Universe UniverseConfig `mapstructure:"universe"`
	Log      LogConfig      `mapstructure:"log"`
	View     ViewConfig     `mapstructure:"view"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
}

type MarketConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RatePerSecond float64       `mapstructure:"rate_per_second" validate:"gte=0"`

	// UpstreamCacheTTL is the yf-go raw response cache; 0 disables it.
	UpstreamCacheTTL time.Duration `mapstructure:"upstream_cache_ttl" validate:"gte=0"`
}

type CacheConfig struct {
	TTL  time.Duration `mapstructure:"ttl" validate:"gt=0"`
	Size int           `mapstructure:"size" validate:"gt=0"`
}

type UniverseConfig struct {
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	File    string `mapstructure:"file"`
	Refresh string `mapstructure:"refresh"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	File  string `mapstructure:"file"`
}

type ViewConfig struct {
	DefaultTicker string `mapstructure:"default_ticker" validate:"required"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("market.timeout", 15*time.Second)
	v.SetDefault("market.rate_per_second", 5.0)
	v.SetDefault("market.upstream_cache_ttl", time.Duration(0))
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.size", 256)
	v.SetDefault("universe.url", WikipediaSP500URL)
	v.SetDefault("universe.file", "")
	v.SetDefault("universe.refresh", "@daily")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("view.default_ticker", "AAPL")
}

// Load reads configuration from file (if given or found), STOCKDASH_* env vars and defaults.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("stockdash")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("stockdash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/stockdash")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.View.DefaultTicker = strings.ToUpper(strings.TrimSpace(cfg.View.DefaultTicker))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
