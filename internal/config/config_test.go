package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "12h", want: 12 * time.Hour},
		{in: " 90m ", want: 90 * time.Minute},
		{in: "", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppEnv:      "production",
			DBDriver:    DriverPostgres,
			DatabaseURL: "postgres://localhost/srs",
			JWTSecret:   "s3cret",
			JWTExpiry:   time.Hour,
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.JWTSecret = DefaultJWTSecret
	assert.Error(t, cfg.Validate(), "default secret is rejected in production")

	cfg = base()
	cfg.AppEnv = "development"
	cfg.JWTSecret = DefaultJWTSecret
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.DBDriver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.JWTExpiry = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadRejectsMalformedExpiry(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRES_IN", "7days")

	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_EXPIRES_IN")
}
