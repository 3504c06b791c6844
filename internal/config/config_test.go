package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("PUBLIC_CACHE_TTL", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 5*time.Minute, cfg.PublicCacheTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("JOIN_RATE_LIMIT", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_FORMAT", "")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 42, cfg.DBMaxOpenConns)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 3, cfg.JoinRateLimit)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestValidate_JWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr error
	}{
		{name: "unset in production", env: "production", secret: "", wantErr: ErrJWTSecretMissing},
		{name: "unset in development", env: "development", secret: "", wantErr: ErrJWTSecretMissing},
		{name: "placeholder in production", env: "production", secret: "changeme", wantErr: ErrJWTSecretPlaceholder},
		{name: "placeholder in staging", env: "staging", secret: "changeme", wantErr: ErrJWTSecretPlaceholder},
		{name: "placeholder in development", env: "development", secret: "changeme"},
		{name: "real secret", env: "production", secret: "s3cr3t-from-vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("AUTH_JWT_SECRET", tt.secret)

			cfg := Load()

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "lots")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

	cfg := Load()

	assert.Equal(t, 5, cfg.DBMaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
}
