package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.HTTPAddr())
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 120, cfg.Auth.JWTExpireMinute)
	assert.Equal(t, "auth.login_record.persist", cfg.RabbitMQ.LoginRecordQueue)
	assert.Contains(t, cfg.MySQLDSN(), "@tcp(127.0.0.1:3306)/forum?")
}
