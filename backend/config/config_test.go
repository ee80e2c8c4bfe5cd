package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "test.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "test.db", cfg.DBPath)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable",
	}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable TimeZone=UTC", cfg.DSN())
}
