package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            "5000",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "user",
		DBPassword:      "password",
		DBName:          "quill",
		DBSSLMode:       "disable",
		RedisURL:        "localhost:6379",
		SessionTTLHours: 24,
		Env:             "development",
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresPositiveSessionTTL(t *testing.T) {
	cfg := validConfig()
	cfg.SessionTTLHours = 0
	assert.Error(t, cfg.Validate())

	cfg.SessionTTLHours = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsWeakDBPassword(t *testing.T) {
	for _, env := range []string{"production", "prod"} {
		cfg := validConfig()
		cfg.Env = env

		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate(), "env %q", env)

		cfg.DBPassword = ""
		assert.Error(t, cfg.Validate(), "env %q", env)

		cfg.DBPassword = "a-real-secret"
		assert.NoError(t, cfg.Validate(), "env %q", env)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, "test", cfg.Env)
}
