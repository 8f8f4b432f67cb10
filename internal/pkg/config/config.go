package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	WriteLockLocal = "local"
	WriteLockRedis = "redis"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`

	Store     StoreConfig
	Mongo     MongoConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	Writes    WriteConfig
	Bootstrap BootstrapConfig
}

// StoreConfig selects the tabular store backend and the store holding the
// users and schedules worksheets.
type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER,      default=sqlite"`
	Name       string `env:"STORE_NAME,        default=studio_db"`
	AutoCreate bool   `env:"STORE_AUTO_CREATE, default=true"`
}

type MongoConfig struct {
	URI string `env:"MONGO_URI, default=mongodb://localhost:27017"`
}

type SQLiteConfig struct {
	Dir string `env:"SQLITE_DIR, default=./data"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// WriteConfig controls how writes to one worksheet are serialized.
type WriteConfig struct {
	Lock     string        `env:"WRITE_LOCK,      default=local"`
	Workers  int           `env:"WRITE_WORKERS,   default=4"`
	LockTTL  time.Duration `env:"WRITE_LOCK_TTL,  default=15s"`
	LockWait time.Duration `env:"WRITE_LOCK_WAIT, default=10s"`
}

// BootstrapConfig seeds the first Master account when ID is set.
type BootstrapConfig struct {
	MasterID       string `env:"BOOTSTRAP_MASTER_ID"`
	MasterPassword string `env:"BOOTSTRAP_MASTER_PASSWORD"`
	MasterName     string `env:"BOOTSTRAP_MASTER_NAME, default=Master"`
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves configuration through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Writes.Lock {
	case WriteLockLocal, WriteLockRedis:
	default:
		return fmt.Errorf("unknown WRITE_LOCK %q", c.Writes.Lock)
	}
	if c.Bootstrap.MasterID != "" && c.Bootstrap.MasterPassword == "" {
		return fmt.Errorf("BOOTSTRAP_MASTER_PASSWORD is required when BOOTSTRAP_MASTER_ID is set")
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool { return c.Env == "production" }
