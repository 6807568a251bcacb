package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// FallbackJWTSecret is only acceptable outside production.
const FallbackJWTSecret = "super-secret-jwt-key-change-in-production"

var ErrMisconfigured = errors.New("config invalid")

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Server   ServerConfig
	Log      LogConfig `envPrefix:"LOG_"`
	Auth     AuthConfig
	Storage  StorageConfig `envPrefix:"STORAGE_"`
	Postgres PostgresConfig
	Seed     SeedConfig `envPrefix:"SEED_"`
}

type ServerConfig struct {
	Port        string   `env:"PORT" envDefault:"3000"`
	APIPrefix   string   `env:"API_PREFIX" envDefault:"/api"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:4200" envSeparator:","`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

type AuthConfig struct {
	JWTSecret    string `env:"JWT_SECRET"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"1d"`
	BcryptCost   int    `env:"BCRYPT_COST" envDefault:"10"`
}

type StorageConfig struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
}

type PostgresConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"PGHOST" envDefault:"localhost"`
	Port        string `env:"PGPORT" envDefault:"5432"`
	User        string `env:"PGUSER"`
	Password    string `env:"PGPASSWORD"`
	Database    string `env:"PGDATABASE"`
	SSLMode     string `env:"PGSSLMODE" envDefault:"disable"`
}

type SeedConfig struct {
	Demo bool `env:"DEMO" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// TokenTTL is the parsed JWT_EXPIRES_IN value.
func (c *Config) TokenTTL() time.Duration {
	ttl, _ := ParseTTL(c.Auth.JWTExpiresIn)
	return ttl
}

func (c *Config) finalize() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		if c.IsProduction() {
			return fmt.Errorf("%w: JWT_SECRET is required in production", ErrMisconfigured)
		}
		c.Auth.JWTSecret = FallbackJWTSecret
	}
	if c.IsProduction() && c.Auth.JWTSecret == FallbackJWTSecret {
		return fmt.Errorf("%w: fallback JWT_SECRET must not be used in production", ErrMisconfigured)
	}

	if ttl, err := ParseTTL(c.Auth.JWTExpiresIn); err != nil || ttl <= 0 {
		return fmt.Errorf("%w: invalid JWT_EXPIRES_IN %q", ErrMisconfigured, c.Auth.JWTExpiresIn)
	}

	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrMisconfigured, c.Storage.Driver)
	}

	prefix := "/" + strings.Trim(strings.TrimSpace(c.Server.APIPrefix), "/")
	if prefix == "/" {
		prefix = ""
	}
	c.Server.APIPrefix = prefix
	return nil
}

// ParseTTL accepts Go durations ("36h"), day counts ("7d") and bare seconds ("3600").
func ParseTTL(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q: %w", value, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(value)
}
