package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sadopc/screentime/internal/api"
)

const envPrefix = "SCREENTIME"

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Log      LogConfig      `mapstructure:"log"`
	Device   string         `mapstructure:"device"`
	Rankings RankingsConfig `mapstructure:"rankings"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// RankingsConfig holds the initial state of the rankings page.
type RankingsConfig struct {
	Limit   int    `mapstructure:"limit"`
	OrderBy string `mapstructure:"order_by"`
}

// SetDefaults registers every key so that SCREENTIME_* environment
// variables resolve through AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogPath())
	v.SetDefault("device", "")
	v.SetDefault("rankings.limit", 20)
	v.SetDefault("rankings.order_by", string(api.OrderByDuration))
}

// Load reads configuration from defaults, an optional YAML file, and the
// environment, in increasing priority. Flags bound to v by the caller take
// precedence over all of them. An explicit path must exist; the default
// location is optional.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api.timeout must not be negative")
	}
	if c.Rankings.Limit < 0 {
		return fmt.Errorf("config: rankings.limit must not be negative")
	}
	if c.Rankings.OrderBy != "" && !api.OrderBy(c.Rankings.OrderBy).Valid() {
		return fmt.Errorf("config: rankings.order_by %q is not one of duration, launches, notifications", c.Rankings.OrderBy)
	}
	return nil
}

// ClientConfig converts to the client configuration.
func (c *Config) ClientConfig(userAgent string) api.Config {
	return api.Config{
		BaseURL:   c.API.BaseURL,
		Timeout:   c.API.Timeout,
		UserAgent: userAgent,
	}
}

// DefaultDir returns ~/.config/screentime
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "screentime"), nil
}

func defaultLogPath() string {
	dir, err := DefaultDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "screentime.log")
}
