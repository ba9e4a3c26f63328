package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,          default=8080"`
	Env      string `env:"ENV,           default=development"`
	BasePath string `env:"API_BASE_PATH, default="`
	LogLevel string `env:"LOG_LEVEL,     default=info"`

	JWT      JWTConfig
	Password PasswordConfig
	Throttle ThrottleConfig
	Webhook  WebhookConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type JWTConfig struct {
	// Secret signs every session token. Changing it requires a restart and
	// invalidates all outstanding tokens; there is no dual-secret rollover.
	Secret     string `env:"JWT_SECRET"`
	TTLMinutes int    `env:"JWT_TTL_MINUTES, default=30"`
}

type PasswordConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=12"`
}

type ThrottleConfig struct {
	MaxFailures   int `env:"LOGIN_MAX_FAILURES,   default=10"`
	WindowMinutes int `env:"LOGIN_WINDOW_MINUTES, default=15"`
}

type WebhookConfig struct {
	URL     string `env:"WEBHOOK_URL,     default="`
	Secret  string `env:"WEBHOOK_SECRET,  default="`
	Workers int    `env:"WEBHOOK_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sexto_andar_auth"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
