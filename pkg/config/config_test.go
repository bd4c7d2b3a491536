package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_StorageConfig(t *testing.T) {
	os.Setenv("STORAGE_BACKEND", "redis")
	os.Setenv("STORAGE_RECORD_KEY", "records-test")
	defer func() {
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("STORAGE_RECORD_KEY")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "records-test", cfg.Storage.RecordKey)
}

func TestLoad_DiscoveryConfig(t *testing.T) {
	os.Setenv("DISCOVERY_PROVIDER", "http")
	os.Setenv("DISCOVERY_BASE_URL", "http://discovery:5000")
	os.Setenv("DISCOVERY_RADIUS_KM", "12.5")
	defer func() {
		os.Unsetenv("DISCOVERY_PROVIDER")
		os.Unsetenv("DISCOVERY_BASE_URL")
		os.Unsetenv("DISCOVERY_RADIUS_KM")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http", cfg.Discovery.Provider)
	assert.Equal(t, "http://discovery:5000", cfg.Discovery.BaseURL)
	assert.Equal(t, 12.5, cfg.Discovery.RadiusKm)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("STORAGE_RECORD_KEY")
	os.Unsetenv("PRODUCT_NAME")
	os.Unsetenv("PRODUCT_DOMAIN")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "healthRecords", cfg.Storage.RecordKey)
	assert.Equal(t, "Medisense Scheduler", cfg.Product.Name)
	assert.Equal(t, "medisense", cfg.Product.Domain)
	assert.Equal(t, "development", cfg.Env)
}

func TestDatabaseDSN(t *testing.T) {
	dsn := (&DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "records",
		SSLMode:  "require",
	}).DatabaseDSN()

	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=records sslmode=require", dsn)
}
