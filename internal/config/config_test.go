package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	assert.Equal(t, 9090, EnvIntDefault("SERVER_PORT", 8080))

	t.Setenv("SERVER_PORT", "not-a-port")
	assert.Equal(t, 8080, EnvIntDefault("SERVER_PORT", 8080))
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "DATABASE_URL", "KAFKA_BROKERS", "KAFKA_TOPIC", "ES_URL", "ES_INDEX", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.Equal(t, "products", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "product_events", cfg.KafkaTopic)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://:memory:")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()
	assert.Equal(t, "sqlite://:memory:", cfg.DatabaseURL)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
}
