package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Change feed backends selectable through CHANGE_FEED.
const (
	FeedMongo  = "mongo"
	FeedRedis  = "redis"
	FeedNATS   = "nats"
	FeedMemory = "memory"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// ChangeFeed selects the realtime backend: mongo, redis, nats or memory.
	ChangeFeed      string `env:"CHANGE_FEED,       default=mongo"`
	DispatchWorkers int    `env:"DISPATCH_WORKERS,  default=4"`

	Mongo  MongoConfig
	Redis  RedisConfig
	NATS   NATSConfig
	Ticks  TickConfig
	Stream StreamConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=response_dashboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type NATSConfig struct {
	URL string `env:"NATS_URL, default=nats://localhost:4222"`
}

// TickConfig holds the simulator periods of a dashboard session.
type TickConfig struct {
	GPS           time.Duration `env:"TICK_GPS,           default=2s"`
	AmbulanceETA  time.Duration `env:"TICK_AMBULANCE_ETA, default=3s"`
	PatientETA    time.Duration `env:"TICK_PATIENT_ETA,   default=5s"`
	Notifications time.Duration `env:"TICK_NOTIFICATIONS, default=8s"`
}

type StreamConfig struct {
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS, default=*"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from l and validates it.
func LoadFrom(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	switch c.ChangeFeed {
	case FeedMongo, FeedRedis, FeedNATS, FeedMemory:
	default:
		return fmt.Errorf("config: unknown CHANGE_FEED %q", c.ChangeFeed)
	}
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("config: JWT_SECRET is required outside development")
	}
	if c.DispatchWorkers < 1 {
		return fmt.Errorf("config: DISPATCH_WORKERS must be at least 1")
	}
	return nil
}
