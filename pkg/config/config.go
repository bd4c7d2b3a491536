package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Discovery DiscoveryConfig
	Severity  SeverityConfig
	Product   ProductConfig
	OTEL      OTELConfig
	Env       string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig selects the record archive backend.
// Backend is one of "memory", "file", "redis", "postgres".
type StorageConfig struct {
	Backend   string
	FilePath  string
	RecordKey string
}

// DiscoveryConfig holds hospital discovery service configuration
type DiscoveryConfig struct {
	Provider string
	BaseURL  string
	RadiusKm float64
}

// SeverityConfig holds symptom analysis service configuration
type SeverityConfig struct {
	Provider string
	BaseURL  string
}

// ProductConfig identifies the product in exported artifacts (iCalendar
// PRODID and UID domain).
type ProductConfig struct {
	Name   string
	Domain string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "medisense_scheduler"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", "memory"),
			FilePath:  getEnv("STORAGE_FILE_PATH", "./data"),
			RecordKey: getEnv("STORAGE_RECORD_KEY", "healthRecords"),
		},
		Discovery: DiscoveryConfig{
			Provider: getEnv("DISCOVERY_PROVIDER", "mock"),
			BaseURL:  getEnv("DISCOVERY_BASE_URL", "http://localhost:5000"),
			RadiusKm: getEnvAsFloat("DISCOVERY_RADIUS_KM", 5),
		},
		Severity: SeverityConfig{
			Provider: getEnv("SEVERITY_PROVIDER", "mock"),
			BaseURL:  getEnv("SEVERITY_BASE_URL", "http://localhost:5000"),
		},
		Product: ProductConfig{
			Name:   getEnv("PRODUCT_NAME", "Medisense Scheduler"),
			Domain: getEnv("PRODUCT_DOMAIN", "medisense"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "medisense-scheduler"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
