package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "BDR"

// Config holds application level configuration.
type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"loglevel"`
	Timezone    string         `mapstructure:"timezone"`
	SwaggerHost string         `mapstructure:"swaggerhost"`
	CORSOrigins []string       `mapstructure:"corsorigins"`
	HTTP        HTTPConfig     `mapstructure:"http"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Auth        AuthConfig     `mapstructure:"auth"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"readtimeout"`
	WriteTimeout    time.Duration `mapstructure:"writetimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdowntimeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"maxopenconns"`
	MaxIdleConns    int           `mapstructure:"maxidleconns"`
	ConnMaxLifetime time.Duration `mapstructure:"connmaxlifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	AccessSecret  string        `mapstructure:"accesssecret"`
	RefreshSecret string        `mapstructure:"refreshsecret"`
	AccessTTL     time.Duration `mapstructure:"accessttl"`
	RefreshTTL    time.Duration `mapstructure:"refreshttl"`
	CookieDomain  string        `mapstructure:"cookiedomain"`
}

// IsProduction reports whether cookies and logging should run in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves the configured timezone used for KPI periods and task due dates.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("jwt access and refresh secrets are required")
	}
	if c.IsProduction() && (c.Auth.AccessSecret == defaultAccessSecret || c.Auth.RefreshSecret == defaultRefreshSecret) {
		return errors.New("default jwt secrets are not allowed in production")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

const (
	defaultAccessSecret  = "change-me-access"
	defaultRefreshSecret = "change-me-refresh"
)

// Load builds Config from an optional .env file, an optional config.yaml and BDR_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("loglevel", "info")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("swaggerhost", "")
	v.SetDefault("corsorigins", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("http.port", "4000")
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.shutdowntimeout", "10s")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "user:password@tcp(localhost:3306)/bdrdragon?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("database.maxopenconns", 20)
	v.SetDefault("database.maxidleconns", 10)
	v.SetDefault("database.connmaxlifetime", "5m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.accesssecret", defaultAccessSecret)
	v.SetDefault("auth.refreshsecret", defaultRefreshSecret)
	v.SetDefault("auth.accessttl", "15m")
	v.SetDefault("auth.refreshttl", "168h")
	v.SetDefault("auth.cookiedomain", "")
}
