package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"

	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

type Config struct {
	Port      string `env:"PORT,      default=3000"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Accounts AccountsConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type AccountsConfig struct {
	Store          string `env:"STORE,            default=file"`
	File           string `env:"STORE_FILE,       default=accounts.json"`
	UniqueOnUpdate bool   `env:"UNIQUE_ON_UPDATE, default=true"`
	Hashing        string `env:"PASSWORD_HASHING, default=plain"`
	BcryptCost     int    `env:"BCRYPT_COST,      default=12"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=useraccounts"`
	Collection string `env:"MONGO_COLLECTION, default=accounts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	Key  string `env:"REDIS_KEY,  default=accounts"`
}

// IsDevelopment reports whether ENV names a local development environment.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Accounts.Store {
	case StoreMemory, StoreFile, StoreMongo, StoreRedis:
	default:
		return nil, fmt.Errorf("config: unknown STORE %q", cfg.Accounts.Store)
	}

	switch cfg.Accounts.Hashing {
	case HashingPlain, HashingBcrypt:
	default:
		return nil, fmt.Errorf("config: unknown PASSWORD_HASHING %q", cfg.Accounts.Hashing)
	}
	return &cfg, nil
}
