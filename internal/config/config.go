package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string
	Port int

	// Storage mode: "local", "remote", or empty for credential detection.
	StorageMode string

	AWSRegion     string
	UsersTable    string
	ServicesTable string
	BookingsTable string

	SNSTopicARN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	JWTSecret string
	AccessTTL time.Duration

	ProvidersSeed string

	SeedUsername string
	SeedPassword string
	SeedRole     string

	OTLPEndpoint string
}

func Load() Config {
	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		StorageMode: getEnv("STORAGE_MODE", ""),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		UsersTable:    getEnv("USERS_TABLE", "quickfix_users"),
		ServicesTable: getEnv("SERVICES_TABLE", "quickfix_services"),
		BookingsTable: getEnv("BOOKINGS_TABLE", "quickfix_bookings"),

		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Second),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		AccessTTL: getEnvDuration("ACCESS_TTL", 15*time.Minute),

		ProvidersSeed: getEnv("PROVIDERS_SEED", "seeds/providers.json"),

		SeedUsername: getEnv("SEED_USERNAME", ""),
		SeedPassword: getEnv("SEED_PASSWORD", ""),
		SeedRole:     getEnv("SEED_ROLE", "provider"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fallback
		}
		return d
	}
	return fallback
}
