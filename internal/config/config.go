// Package config loads runtime settings from an optional .env file, an
// optional .kanso.yaml and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

const (
	GatewayMemory = "memory"
	GatewaySQL    = "sql"
	GatewayREST   = "rest"

	CacheNone  = "none"
	CacheRedis = "redis"
	CacheDisk  = "disk"
)

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

// DSN returns the connection string for Driver.
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type RESTConfig struct {
	BaseURL string
	Token   string
}

type CacheConfig struct {
	Kind string
	TTL  time.Duration
	Dir  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type DispatchConfig struct {
	Workers int
	Queue   int
}

type Config struct {
	Port      string
	Gateway   string
	RateLimit int
	DailyGoal int

	DB       DBConfig
	REST     RESTConfig
	Cache    CacheConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Dispatch DispatchConfig
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gateway", GatewayMemory)
	v.SetDefault("rate_limit", 100)
	v.SetDefault("daily_goal", domain.DefaultDailyGoal)

	v.SetDefault("db_driver", "pgx")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_name", "kanso_db")
	v.SetDefault("sqlite_path", "kanso.db")

	v.SetDefault("cache", CacheNone)
	v.SetDefault("cache_ttl", "30m")
	v.SetDefault("cache_dir", "~/.kanso/cache")

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("jwt_issuer", "kanso-lifesync")
	v.SetDefault("jwt_ttl", "24h")

	v.SetDefault("dispatch_workers", 4)
	v.SetDefault("dispatch_queue", 256)
}

var envKeys = []string{
	"port", "gateway", "rate_limit", "daily_goal",
	"db_driver", "db_host", "db_port", "db_user", "db_password", "db_name", "sqlite_path",
	"rest_base_url", "rest_token",
	"cache", "cache_ttl", "cache_dir",
	"redis_host", "redis_port", "redis_password", "redis_db",
	"jwt_secret", "jwt_issuer", "jwt_ttl",
	"dispatch_workers", "dispatch_queue",
}

// Load reads the configuration. dir, when not empty, is searched for
// .env and .kanso.yaml before the working directory; KANSO_CONFIG_PATH
// adds one more search path.
func Load(dir string) (*Config, error) {
	envFile := ".env"
	if dir != "" {
		envFile = dir + string(os.PathSeparator) + ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	v := viper.New()
	defaults(v)
	v.SetConfigName(".kanso")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	if override := os.Getenv("KANSO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(".")

	for _, k := range envKeys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:      v.GetString("port"),
		Gateway:   strings.ToLower(v.GetString("gateway")),
		RateLimit: v.GetInt("rate_limit"),
		DailyGoal: v.GetInt("daily_goal"),
		DB: DBConfig{
			Driver:     strings.ToLower(v.GetString("db_driver")),
			Host:       v.GetString("db_host"),
			Port:       v.GetString("db_port"),
			User:       v.GetString("db_user"),
			Password:   v.GetString("db_password"),
			Name:       v.GetString("db_name"),
			SQLitePath: v.GetString("sqlite_path"),
		},
		REST: RESTConfig{
			BaseURL: v.GetString("rest_base_url"),
			Token:   v.GetString("rest_token"),
		},
		Cache: CacheConfig{
			Kind: strings.ToLower(v.GetString("cache")),
			TTL:  v.GetDuration("cache_ttl"),
			Dir:  v.GetString("cache_dir"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis_host"),
			Port:     v.GetString("redis_port"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			Issuer: v.GetString("jwt_issuer"),
			TTL:    v.GetDuration("jwt_ttl"),
		},
		Dispatch: DispatchConfig{
			Workers: v.GetInt("dispatch_workers"),
			Queue:   v.GetInt("dispatch_queue"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Gateway {
	case GatewayMemory, GatewaySQL:
	case GatewayREST:
		if c.REST.BaseURL == "" {
			errs = append(errs, errors.New("REST_BASE_URL is required for the rest gateway"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown GATEWAY %q (memory, sql or rest)", c.Gateway))
	}

	if c.Gateway == GatewaySQL {
		switch c.DB.Driver {
		case "pgx", "postgres", "sqlite":
		default:
			errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q (pgx, postgres or sqlite)", c.DB.Driver))
		}
	}

	switch c.Cache.Kind {
	case CacheNone, CacheRedis, CacheDisk:
	default:
		errs = append(errs, fmt.Errorf("unknown CACHE %q (none, redis or disk)", c.Cache.Kind))
	}

	if c.DailyGoal < 1 {
		errs = append(errs, errors.New("DAILY_GOAL must be at least 1 minute"))
	}

	if c.Dispatch.Workers < 1 {
		errs = append(errs, errors.New("DISPATCH_WORKERS must be at least 1"))
	}
	if c.Dispatch.Queue < 1 {
		errs = append(errs, errors.New("DISPATCH_QUEUE must be at least 1"))
	}

	return errors.Join(errs...)
}
