// Package config loads runtime settings from the environment (and a .env
// file outside production).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Port   string `env:"PORT,default=8080"`
	AppEnv string `env:"APP_ENV,default=development"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	JWTSecret  string        `env:"JWT_SECRET,required"`
	SessionTTL time.Duration `env:"SESSION_TTL,default=24h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	AIServerURL string        `env:"AI_SERVER_URL"`
	AITimeout   time.Duration `env:"AI_TIMEOUT,default=20s"`

	RecipesPath  string `env:"RECIPES_PATH,default=artifacts/recipes.jsonl"`
	RecipesR2Key string `env:"RECIPES_R2_KEY"`

	R2Endpoint  string `env:"R2_ENDPOINT"`
	R2AccessKey string `env:"R2_ACCESS_KEY"`
	R2SecretKey string `env:"R2_SECRET_KEY"`
	R2Bucket    string `env:"R2_BUCKET_NAME"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST,default=20"`
}

// Load reads .env (unless APP_ENV=production) and decodes the environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.RecipesR2Key != "" && !c.R2Configured() {
		return errors.New("RECIPES_R2_KEY requires R2_ENDPOINT, R2_ACCESS_KEY, R2_SECRET_KEY and R2_BUCKET_NAME")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func (c *Config) R2Configured() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2Bucket != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
