package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOFTGYM_ENV", "")
	t.Setenv("SOFTGYM_CSRF_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "softgym.db", cfg.DBPath)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 50*time.Millisecond, cfg.SlowQuery())
	assert.False(t, cfg.IsProduction())
	assert.Nil(t, cfg.CSRFKeyBytes())
	assert.NotNil(t, cfg.Location())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "SOFTGYM_ADDR=:9999\nSOFTGYM_DB_PATH=/tmp/gym.db\nSOFTGYM_TIMEZONE=UTC\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv never overrides variables that are already set
	t.Setenv("SOFTGYM_ADDR", "")
	os.Unsetenv("SOFTGYM_ADDR")
	os.Unsetenv("SOFTGYM_DB_PATH")
	os.Unsetenv("SOFTGYM_TIMEZONE")
	t.Cleanup(func() {
		os.Unsetenv("SOFTGYM_DB_PATH")
		os.Unsetenv("SOFTGYM_TIMEZONE")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/tmp/gym.db", cfg.DBPath)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "production without csrf key",
			env:     map[string]string{"SOFTGYM_ENV": "production", "SOFTGYM_CSRF_KEY": ""},
			wantErr: "CSRF_KEY is required",
		},
		{
			name:    "short csrf key",
			env:     map[string]string{"SOFTGYM_CSRF_KEY": "abcd"},
			wantErr: "64 hex characters",
		},
		{
			name:    "unknown timezone",
			env:     map[string]string{"SOFTGYM_TIMEZONE": "Mars/Olympus"},
			wantErr: "TIMEZONE",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"SOFTGYM_SESSION_TTL": "soon"},
			wantErr: "SESSION_TTL",
		},
		{
			name:    "zero rate limit",
			env:     map[string]string{"SOFTGYM_RATE_LIMIT_PER_SECOND": "0"},
			wantErr: "RATE_LIMIT_PER_SECOND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should mention %q", err, tt.wantErr)
		})
	}
}

func TestLoadProductionWithKey(t *testing.T) {
	t.Setenv("SOFTGYM_ENV", "production")
	t.Setenv("SOFTGYM_CSRF_KEY", testKey)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Len(t, cfg.CSRFKeyBytes(), 32)
}

func TestLoadTrustedOrigins(t *testing.T) {
	t.Setenv("SOFTGYM_TRUSTED_ORIGINS", "gym.example.com,desk.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"gym.example.com", "desk.example.com"}, cfg.TrustedOrigins)
}
