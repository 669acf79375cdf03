package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// DefaultSessionSecret is only acceptable outside production.
const DefaultSessionSecret = "change-me-in-production"

type HTTPServer struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Store struct {
	Driver  string        `mapstructure:"driver"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Mongo struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type Postgres struct {
	URL string `mapstructure:"url"`
}

type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	FlashTTL time.Duration `mapstructure:"flash_ttl"`
}

type Session struct {
	Secret string        `mapstructure:"secret"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type Auth struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Dashboard struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

type Config struct {
	Env       string     `mapstructure:"env"`
	HTTP      HTTPServer `mapstructure:"http"`
	Store     Store      `mapstructure:"store"`
	Mongo     Mongo      `mapstructure:"mongo"`
	Postgres  Postgres   `mapstructure:"postgres"`
	Redis     Redis      `mapstructure:"redis"`
	Session   Session    `mapstructure:"session"`
	Auth      Auth       `mapstructure:"auth"`
	RateLimit RateLimit  `mapstructure:"rate_limit"`
	Dashboard Dashboard  `mapstructure:"dashboard"`
}

// envBindings maps the flat environment variable names operators already use
// onto nested config keys.
var envBindings = map[string]string{
	"env":                       "APP_ENV",
	"http.addr":                 "HTTP_ADDR",
	"store.driver":              "STORE_DRIVER",
	"mongo.uri":                 "MONGO_URI",
	"mongo.database":            "MONGO_DATABASE",
	"mongo.collection":          "MONGO_COLLECTION",
	"postgres.url":              "DATABASE_URL",
	"redis.addr":                "REDIS_ADDR",
	"redis.password":            "REDIS_PASSWORD",
	"session.secret":            "SESSION_SECRET",
	"auth.username":             "OPERATOR_USERNAME",
	"auth.password_hash":        "OPERATOR_PASSWORD_HASH",
	"rate_limit.rps":            "RATE_LIMIT_RPS",
	"rate_limit.burst":          "RATE_LIMIT_BURST",
	"dashboard.currency_symbol": "CURRENCY_SYMBOL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 5*time.Second)
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("store.timeout", 3*time.Second)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017/")
	v.SetDefault("mongo.database", "estoque_db")
	v.SetDefault("mongo.collection", "inventory_items")
	v.SetDefault("postgres.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.flash_ttl", 5*time.Minute)
	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.max_age", 24*time.Hour)
	v.SetDefault("auth.username", "operator")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("rate_limit.rps", 2.0)
	v.SetDefault("rate_limit.burst", 5)
	v.SetDefault("dashboard.currency_symbol", "R$")
}

// Load reads configuration from the optional file named by CONFIG_PATH and
// from the environment. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverMongo, DriverMemory:
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("store driver postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.IsProduction() && (c.Session.Secret == "" || c.Session.Secret == DefaultSessionSecret) {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
