package config

import (
	"testing"
	"time"

	"hava-checkout/internal/common/enum"
	database "hava-checkout/internal/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFill_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, fill(cfg, lookupFrom(nil)))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, enum.DEVELOPMENT, cfg.AppEnv)
	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "Asia/Manila", cfg.Timezone)
	assert.Equal(t, "CafeHavaJava", cfg.MessengerPageID)
	assert.Equal(t, enum.HANDOFF_LINK, cfg.HandoffDriver)
	assert.Equal(t, database.POSTGRES, cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL())
	assert.Equal(t, time.Minute, cfg.DBCacheTime())
	assert.True(t, cfg.RedisEnabled)
	assert.False(t, cfg.RabbitEnabled)
}

func TestFill_Overrides(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, fill(cfg, lookupFrom(map[string]string{
		"APP_PORT":            "9090",
		"HANDOFF_DRIVER":      "queue",
		"SESSION_TTL_MINUTES": "15",
		"RABBIT_ENABLED":      "true",
		"DB_DRIVER":           "mysql",
		"TIMEZONE":            "UTC",
	})))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, enum.HANDOFF_QUEUE, cfg.HandoffDriver)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL())
	assert.True(t, cfg.RabbitEnabled)
	assert.Equal(t, database.MYSQL, cfg.DBDriver)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestFill_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"int", map[string]string{"APP_PORT": "eighty"}},
		{"bool", map[string]string{"REDIS_ENABLED": "sometimes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, fill(&Config{}, lookupFrom(tt.env)))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"app env", map[string]string{"APP_ENV": "qa"}},
		{"handoff driver", map[string]string{"HANDOFF_DRIVER": "sms"}},
		{"db driver", map[string]string{"DB_DRIVER": "sqlite"}},
		{"session ttl", map[string]string{"SESSION_TTL_MINUTES": "0"}},
		{"timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			require.NoError(t, fill(cfg, lookupFrom(tt.env)))
			assert.Error(t, cfg.Validate())
		})
	}
}
