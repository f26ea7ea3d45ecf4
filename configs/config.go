package configs

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Log     LogConfig
	MockAPI MockAPIConfig
	Kafka   KafkaConfig
}

// APIConfig is how the client reaches the delivery API.
type APIConfig struct {
	BaseURL           string        `env:"DELIVERY_API_URL, default=http://localhost:5000/api"`
	Timeout           time.Duration `env:"DELIVERY_API_TIMEOUT, default=30s"`
	RequestsPerSecond float64       `env:"DELIVERY_API_RPS, default=0"`
	Burst             int           `env:"DELIVERY_API_BURST, default=1"`
}

// StorageConfig selects where the bearer credential is persisted.
type StorageConfig struct {
	Driver   string `env:"STORAGE_DRIVER, default=file"`
	FilePath string `env:"STORAGE_FILE, default=.delivery/session.json"`
	TokenKey string `env:"STORAGE_TOKEN_KEY, default=token"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
	Prefix   string `env:"REDIS_PREFIX, default=delivery"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=true"`
}

// MockAPIConfig configures the reference API server.
type MockAPIConfig struct {
	Port        string        `env:"PORT, default=5000"`
	Mode        string        `env:"GIN_MODE, default=debug"`
	Prefix      string        `env:"API_PREFIX, default=/api"`
	JWTSecret   string        `env:"JWT_SECRET_KEY, default=dev-secret-change-me"`
	TokenTTL    time.Duration `env:"JWT_TTL, default=168h"`
	CORSOrigins []string      `env:"CORS_ORIGINS, default=*"`
	RateLimit   float64       `env:"RATE_LIMIT_RPS, default=0"`
	RateBurst   int           `env:"RATE_LIMIT_BURST, default=20"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (*Config, error) {
	return load(envconfig.OsLookuper())
}

// LoadConfigFrom reads the configuration from a fixed set of values.
func LoadConfigFrom(values map[string]string) (*Config, error) {
	return load(envconfig.MapLookuper(values))
}

func load(lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
