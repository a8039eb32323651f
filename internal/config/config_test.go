package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": testSecret,
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.True(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, "localhost", cfg.Redis.Host)

	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpiry.Duration)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiry.Duration)

	assert.Equal(t, 12, cfg.Security.BCryptCost)
	assert.Equal(t, 5, cfg.Security.LockoutThreshold)
	assert.Equal(t, time.Hour, cfg.Security.LockoutWindow.Duration)
	assert.False(t, cfg.Security.RotateRefreshTokens)

	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, "http://localhost:8080", cfg.App.APIURL)
	assert.Equal(t, "http://localhost:3000", cfg.App.ClientURL)
	assert.Equal(t, "@hourly", cfg.Jobs.TokenCleanupSchedule)
	assert.Equal(t, "development", cfg.Env)

	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.CORS.AllowedMethods, "PUT")
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":                  testSecret,
		"JWT_ACCESS_TOKEN_EXPIRY":     "30m",
		"JWT_REFRESH_TOKEN_EXPIRY":    "2w",
		"BCRYPT_COST":                 "4",
		"LOCKOUT_THRESHOLD":           "3",
		"LOCKOUT_WINDOW":              "1d",
		"ROTATE_REFRESH_TOKENS":       "true",
		"SMTP_HOST":                   "smtp.example.com",
		"APP_CLIENT_URL":              "https://app.example.com",
		"JOBS_TOKEN_CLEANUP_SCHEDULE": "*/5 * * * *",
		"ENV":                         "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiry.Duration)
	assert.Equal(t, 14*24*time.Hour, cfg.JWT.RefreshTokenExpiry.Duration)
	assert.Equal(t, 4, cfg.Security.BCryptCost)
	assert.Equal(t, 3, cfg.Security.LockoutThreshold)
	assert.Equal(t, 24*time.Hour, cfg.Security.LockoutWindow.Duration)
	assert.True(t, cfg.Security.RotateRefreshTokens)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "https://app.example.com", cfg.App.ClientURL)
	assert.Equal(t, "*/5 * * * *", cfg.Jobs.TokenCleanupSchedule)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing secret",
			env:  map[string]string{},
		},
		{
			name: "short secret",
			env:  map[string]string{"JWT_SECRET": "short"},
		},
		{
			name: "bcrypt cost below minimum",
			env:  map[string]string{"JWT_SECRET": testSecret, "BCRYPT_COST": "2"},
		},
		{
			name: "bcrypt cost above maximum",
			env:  map[string]string{"JWT_SECRET": testSecret, "BCRYPT_COST": "40"},
		},
		{
			name: "zero lockout threshold",
			env:  map[string]string{"JWT_SECRET": testSecret, "LOCKOUT_THRESHOLD": "0"},
		},
		{
			name: "malformed duration",
			env:  map[string]string{"JWT_SECRET": testSecret, "LOCKOUT_WINDOW": "xd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestPostgresConfig_URL(t *testing.T) {
	p := PostgresConfig{
		Host:     "db",
		Port:     "5433",
		User:     "tm",
		Password: "p@ss",
		DBName:   "tasks",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://tm:p%40ss@db:5433/tasks?sslmode=disable", p.URL())
	assert.Equal(t, "host=db port=5433 user=tm password=p@ss dbname=tasks sslmode=disable", p.DSN())
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "15m", want: 15 * time.Minute},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "2w", want: 14 * 24 * time.Hour},
		{in: "500ms", want: 500 * time.Millisecond},
		{in: "1.5d", wantErr: true},
		{in: "abc", wantErr: true},
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

func TestDuration_TextRoundTrip(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("3d")))
	assert.Equal(t, 72*time.Hour, d.Duration)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "72h0m0s", string(text))
}
