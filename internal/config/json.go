package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
// Durations accept either Go duration strings ("30m") or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey          string   `json:"token_sign_key"`
		RefreshTokenSignKey   string   `json:"refresh_token_sign_key"`
		TokenIssuer           string   `json:"token_issuer"`
		AccessTokenDuration   Duration `json:"access_token_duration"`
		RefreshTokenDuration  Duration `json:"refresh_token_duration"`
		RotateRefreshTokens   bool     `json:"rotate_refresh_tokens"`
		PasswordHashAlgorithm string   `json:"password_hash_algorithm"`
		PasswordHashCost      int      `json:"password_hash_cost"`
		AdminLoginID          string   `json:"admin_login_id"`
		AdminPassword         string   `json:"admin_password"`
		Version               string   `json:"version"`
		LogLevel              string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		RefreshTokenCleanupInterval Duration `json:"refresh_token_cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:          jsonCfg.App.TokenSignKey,
			RefreshTokenSignKey:   jsonCfg.App.RefreshTokenSignKey,
			TokenIssuer:           jsonCfg.App.TokenIssuer,
			AccessTokenDuration:   time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration:  time.Duration(jsonCfg.App.RefreshTokenDuration),
			RotateRefreshTokens:   jsonCfg.App.RotateRefreshTokens,
			PasswordHashAlgorithm: jsonCfg.App.PasswordHashAlgorithm,
			PasswordHashCost:      jsonCfg.App.PasswordHashCost,
			AdminLoginID:          jsonCfg.App.AdminLoginID,
			AdminPassword:         jsonCfg.App.AdminPassword,
			Version:               jsonCfg.App.Version,
			LogLevel:              jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			RefreshTokenCleanupInterval: time.Duration(jsonCfg.Workers.RefreshTokenCleanupInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
