package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds the PostgreSQL connection details.
type DatabaseConfig struct {
	host     string
	port     int
	user     string
	password string
	dbName   string
}

func (d DatabaseConfig) GetHost() string     { return d.host }
func (d DatabaseConfig) GetPort() int        { return d.port }
func (d DatabaseConfig) GetUser() string     { return d.user }
func (d DatabaseConfig) GetPassword() string { return d.password }
func (d DatabaseConfig) GetDBName() string   { return d.dbName }

// GlobalConfig carries everything the service reads from the environment.
type GlobalConfig struct {
	LogLevel string

	Host string
	Port string

	database DatabaseConfig

	RabbitHost string
	RabbitPort int32
	RabbitUser string
	RabbitPass string

	RoomProviderURL string
	RoomProviderKey string

	JWTSecret string

	// StaleSessionThreshold is how long a non-terminal session may sit
	// without activity before the sweep reclaims it. Defaults to the room
	// expiry (2h) plus a 15 minute grace period.
	StaleSessionThreshold time.Duration

	// SweepSchedule is a cron expression for the in-process reclamation
	// sweep.
	SweepSchedule string
}

func (c *GlobalConfig) GetHost() string                   { return c.Host }
func (c *GlobalConfig) GetPort() string                   { return c.Port }
func (c *GlobalConfig) GetDatabaseConfig() DatabaseConfig { return c.database }

// AMQPURL assembles the RabbitMQ connection string.
func (c *GlobalConfig) AMQPURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.RabbitUser, c.RabbitPass, c.RabbitHost, c.RabbitPort)
}

// NewConfig loads configuration from the environment. Every variable
// without a stated default is required and missing ones fail startup.
func NewConfig() (*GlobalConfig, error) {
	cfg := &GlobalConfig{}

	var err error
	if cfg.LogLevel, err = requireEnv("LOG_LEVEL"); err != nil {
		return nil, err
	}
	if cfg.Host, err = requireEnv("HOST"); err != nil {
		return nil, err
	}
	if cfg.Port, err = requireEnv("PORT"); err != nil {
		return nil, err
	}

	if cfg.database.host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	dbPortStr, err := requireEnv("DB_PORT")
	if err != nil {
		return nil, err
	}
	if cfg.database.port, err = strconv.Atoi(dbPortStr); err != nil {
		return nil, fmt.Errorf("DB_PORT must be a valid integer: %w", err)
	}
	if cfg.database.user, err = requireEnv("DB_USER"); err != nil {
		return nil, err
	}
	if cfg.database.password, err = requireEnv("DB_PASS"); err != nil {
		return nil, err
	}
	if cfg.database.dbName, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	if cfg.RabbitHost, err = requireEnv("RABBITMQ_HOST"); err != nil {
		return nil, err
	}
	rabbitPortStr, err := requireEnv("RABBITMQ_PORT")
	if err != nil {
		return nil, err
	}
	rabbitPort, err := strconv.ParseInt(rabbitPortStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("RABBITMQ_PORT must be a valid integer: %w", err)
	}
	cfg.RabbitPort = int32(rabbitPort)
	if cfg.RabbitUser, err = requireEnv("RABBITMQ_USER"); err != nil {
		return nil, err
	}
	if cfg.RabbitPass, err = requireEnv("RABBITMQ_PASS"); err != nil {
		return nil, err
	}

	if cfg.RoomProviderURL, err = requireEnv("ROOM_PROVIDER_URL"); err != nil {
		return nil, err
	}
	if cfg.RoomProviderKey, err = requireEnv("ROOM_PROVIDER_KEY"); err != nil {
		return nil, err
	}

	if cfg.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	cfg.StaleSessionThreshold = 2*time.Hour + 15*time.Minute
	if raw := os.Getenv("STALE_SESSION_THRESHOLD"); raw != "" {
		threshold, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("STALE_SESSION_THRESHOLD must be a valid duration: %w", err)
		}
		if threshold <= 0 {
			return nil, fmt.Errorf("STALE_SESSION_THRESHOLD must be positive")
		}
		cfg.StaleSessionThreshold = threshold
	}

	cfg.SweepSchedule = "@every 10m"
	if raw := os.Getenv("SWEEP_SCHEDULE"); raw != "" {
		cfg.SweepSchedule = raw
	}

	return cfg, nil
}

func requireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("%s environment variable is required", name)
	}
	return value, nil
}
