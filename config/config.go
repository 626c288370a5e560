package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DevSessionSecret signs tokens in development when SESSION_SECRET is unset.
const DevSessionSecret = "change-me-in-production"

var ErrSessionSecret = errors.New("config: SESSION_SECRET must be set outside development")

type Config struct {
	// Server configuration
	Environment string

	// Storage configuration
	StorageDriver string // redis, memory
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Session configuration
	SessionSecret string
	SessionTTL    time.Duration

	// Checkout configuration
	PaymentSimulationDelay time.Duration
	SimulatedBookedSeats   int

	// Rate limiting
	AuthAttemptsPerMinute int
	RequestsPerSecond     float64
	RequestBurst          int

	// Monitoring
	EnableMetrics   bool
	MetricsPort     string
	MetricsInterval time.Duration
}

func LoadConfig() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Storage
		StorageDriver: getEnv("STORAGE_DRIVER", "redis"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Sessions
		SessionSecret: getEnv("SESSION_SECRET", DevSessionSecret),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", "168h"),

		// Checkout
		PaymentSimulationDelay: getEnvAsDuration("PAYMENT_SIMULATION_DELAY", "2s"),
		SimulatedBookedSeats:   getEnvAsInt("SIMULATED_BOOKED_SEATS", 20),

		// Rate limiting
		AuthAttemptsPerMinute: getEnvAsInt("AUTH_ATTEMPTS_PER_MINUTE", 10),
		RequestsPerSecond:     getEnvAsFloat("REQUESTS_PER_SECOND", 20),
		RequestBurst:          getEnvAsInt("REQUEST_BURST", 40),

		// Monitoring
		EnableMetrics:   getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
		MetricsInterval: getEnvAsDuration("METRICS_INTERVAL", "30s"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Validate refuses settings that are only safe on a developer machine.
func (c *Config) Validate() error {
	if !c.IsDevelopment() && (c.SessionSecret == "" || c.SessionSecret == DevSessionSecret) {
		return ErrSessionSecret
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
