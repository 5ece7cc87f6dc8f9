package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_ACCESS_EXPIRE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpire)
	assert.True(t, cfg.AuthRequired)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("JWT_ACCESS_EXPIRE", "90m")
	t.Setenv("AUTH_REQUIRED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 7, cfg.DBMaxOpenConns)
	assert.Equal(t, 90*time.Minute, cfg.JWTAccessExpire)
	assert.False(t, cfg.AuthRequired)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DBUsername: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBDatabase: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?parseTime=true&loc=Local&multiStatements=true", cfg.GetDSN())
}

func TestLogoURL(t *testing.T) {
	cfg := &Config{AppURL: "http://localhost:8080"}
	assert.Equal(t, "", cfg.LogoURL(""))
	assert.Equal(t, "http://localhost:8080/storage/logos/a.png", cfg.LogoURL("a.png"))
}
