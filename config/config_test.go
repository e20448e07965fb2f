package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("CACHE_TTL", "")

	cfg := Load()

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "http://localhost:5173", cfg.CORSAllowedOrigin)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "rest")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "menu")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("CORS_ALLOWED_ORIGIN", "http://163.25.107.227:5173")

	cfg := Load()

	assert.Equal(t, "host=db port=6543 user=rest password=secret dbname=menu sslmode=disable", cfg.PostgresDSN())
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "http://163.25.107.227:5173", cfg.CORSAllowedOrigin)
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "go duration", value: "30s", want: 30 * time.Second},
		{name: "plain seconds", value: "90", want: 90 * time.Second},
		{name: "garbage", value: "soon", want: time.Minute},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("SOME_TTL", testCase.value)
			assert.Equal(t, testCase.want, getDuration("SOME_TTL", time.Minute))
		})
	}
}
