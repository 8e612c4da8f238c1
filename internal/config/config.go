package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// KafkaConfig holds the broker settings for profile and user lifecycle events.
type KafkaConfig struct {
	Enabled          bool
	BootstrapServers string
	GroupID          string
	SecurityProtocol string // "PLAINTEXT", "SASL_SSL", ...
	SASLUsername     string
	SASLPassword     string
}

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Auth (tokens are issued by the auth service)
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Analytics
	AnalyticsAsync        bool          // Recompute in the background after profile writes
	AnalyticsTimeout      time.Duration // Budget for one background recompute
	NetWorthDefaultMonths int
	DefaultCurrency       string

	// Events
	Kafka KafkaConfig

	// Nightly recompute / net worth snapshot
	SnapshotEnabled    bool
	SnapshotSchedule   string        // Cron expression (e.g., "0 2 * * *" for 02:00 daily)
	SnapshotTimeout    time.Duration // Timeout for a complete snapshot run
	SnapshotRunOnStart bool          // Trigger one pass right after startup
}

// Load reads the configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/flouswise_finance?sslmode=disable"),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// Analytics
		AnalyticsAsync:        getBoolEnv("ANALYTICS_ASYNC", false),
		AnalyticsTimeout:      getDurationEnv("ANALYTICS_TIMEOUT", 30*time.Second),
		NetWorthDefaultMonths: getIntEnv("NET_WORTH_DEFAULT_MONTHS", 6),
		DefaultCurrency:       getEnv("DEFAULT_CURRENCY", "MAD"),

		// Events
		Kafka: KafkaConfig{
			Enabled:          getBoolEnv("KAFKA_ENABLED", false),
			BootstrapServers: getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
			GroupID:          getEnv("KAFKA_GROUP_ID", "finance-service-group"),
			SecurityProtocol: getEnv("KAFKA_SECURITY_PROTOCOL", "PLAINTEXT"),
			SASLUsername:     os.Getenv("KAFKA_SASL_USERNAME"),
			SASLPassword:     os.Getenv("KAFKA_SASL_PASSWORD"),
		},

		// Snapshot
		SnapshotEnabled:    getBoolEnv("SNAPSHOT_ENABLED", false),
		SnapshotSchedule:   getEnv("SNAPSHOT_SCHEDULE", "0 2 * * *"),
		SnapshotTimeout:    getDurationEnv("SNAPSHOT_TIMEOUT", 10*time.Minute),
		SnapshotRunOnStart: getBoolEnv("SNAPSHOT_RUN_ON_START", false),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
