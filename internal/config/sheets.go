package config

import (
	"github.com/spf13/viper"

	"github.com/yukirin/cplist/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets configuration from Viper and
// environment variables. Viper values (config file or CPLIST_ env vars)
// win over direct GOOGLE_SHEETS_* variables, which win over defaults.
func LoadSheetsConfig() (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		cfg.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		cfg.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		cfg.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		cfg.SpreadsheetName = v
	}

	if cfg.ServiceAccountPath == "" {
		cfg.ServiceAccountPath = ExpandPath(envOr("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", ""))
	}
	if cfg.ClientID == "" {
		cfg.ClientID = envOr("GOOGLE_SHEETS_CLIENT_ID", "")
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = envOr("GOOGLE_SHEETS_CLIENT_SECRET", "")
	}
	if cfg.RefreshToken == "" {
		cfg.RefreshToken = envOr("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	}
	if cfg.SpreadsheetID == "" {
		cfg.SpreadsheetID = envOr("GOOGLE_SHEETS_SPREADSHEET_ID", "")
	}
	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = envOr("GOOGLE_SHEETS_SPREADSHEET_NAME", "购物清单")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
