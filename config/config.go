package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DevJWTSecret is the fallback signing key. It is accepted only in development.
const DevJWTSecret = "your-secret-key-change-this-in-prod"

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Metrics  MetricsConfig
	Store    StoreConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPAddr string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type DatabaseConfig struct {
	Driver          string // sqlite or postgres
	Path            string // sqlite file
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	Postgres        PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey       string
	ExpirationHours int
}

// RedisConfig leaves Addr empty to run without a cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig leaves Brokers empty to run without a broker.
type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
	StockTopic  string
	GroupID     string
}

func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

type MetricsConfig struct {
	Prefix string
}

type StoreConfig struct {
	TaxRate           decimal.Decimal
	LowStockThreshold int
	SeedSampleData    bool
	AdminEmail        string
	AdminPassword     string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "development"),
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Path:            getEnv("DB_PATH", "poultry.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("DB_CONN_MAX_IDLE_TIME", 60),
			Postgres: PostgresConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnv("POSTGRES_PORT", "5432"),
				User:     getEnv("POSTGRES_USER", "poultry"),
				Password: getEnv("POSTGRES_PASSWORD", "poultry"),
				DBName:   getEnv("POSTGRES_DB", "poultry"),
				SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			},
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", DevJWTSecret),
			ExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 12),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:     getEnvSlice("KAFKA_BROKERS", nil),
			OrdersTopic: getEnv("KAFKA_TOPIC_ORDERS", "orders.events"),
			StockTopic:  getEnv("KAFKA_TOPIC_STOCK", "stock.events"),
			GroupID:     getEnv("KAFKA_GROUP_INVENTORY", "poultry-inventory"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "poultry_pos"),
		},
		Store: StoreConfig{
			TaxRate:           getEnvDecimal("TAX_RATE", decimal.RequireFromString("0.10")),
			LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 20),
			SeedSampleData:    getEnvBool("SEED_SAMPLE_DATA", true),
			AdminEmail:        getEnv("ADMIN_EMAIL", "admin@mail.com"),
			AdminPassword:     getEnv("ADMIN_PASSWORD", "admin123"),
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}
	if c.Store.TaxRate.IsNegative() || c.Store.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("TAX_RATE must be within [0, 1], got %s", c.Store.TaxRate))
	}
	if c.Store.LowStockThreshold < 0 {
		errs = append(errs, errors.New("LOW_STOCK_THRESHOLD must not be negative"))
	}
	switch {
	case c.JWT.SecretKey == "":
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	case c.JWT.SecretKey == DevJWTSecret && !c.IsDevelopment():
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY must be set when APP_ENV=%s", c.Server.AppEnv))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		if strings.TrimSpace(value) == "" {
			return fallback
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return fallback
}
