package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.EnableFormatting)
	assert.Equal(t, "Asia/Shanghai", cfg.TimeZone)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, time.Second, cfg.RetryDelay)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no auth",
			mutate:  func(_ *Config) {},
			wantErr: "no authentication method",
		},
		{
			name: "valid oauth",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
		},
		{
			name: "valid service account",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
			},
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
				c.ServiceAccountPath = "/path/to/key.json"
			},
			wantErr: "multiple authentication methods",
		},
		{
			name: "zero batch size",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
				c.BatchSize = 0
			},
			wantErr: "batch size",
		},
		{
			name: "negative retries",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
				c.RetryAttempts = -1
			},
			wantErr: "retry attempts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromEnvMissingAuth(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")

	cfg := DefaultConfig()
	err := cfg.LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvDefaultsName(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/path/to/key.json")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, "购物清单", cfg.SpreadsheetName)
}
