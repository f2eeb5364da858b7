package config

import (
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	DefaultClientServerAddress  = "localhost:8080"
	DefaultClientRequestTimeout = 10 * time.Second
)

// ClientConfig holds the settings of the command line client.
//
// Struct tags:
//   - env: environment variable name read by caarlos0/env.
type ClientConfig struct {
	// ServerAddress is the login server address, with or without scheme.
	// Env: LOGIN_SERVER_ADDRESS
	ServerAddress string `env:"LOGIN_SERVER_ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: LOGIN_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"LOGIN_REQUEST_TIMEOUT"`

	// AccessToken and RefreshToken restore a session from an earlier login.
	// Env: LOGIN_ACCESS_TOKEN, LOGIN_REFRESH_TOKEN
	AccessToken  string `env:"LOGIN_ACCESS_TOKEN"`
	RefreshToken string `env:"LOGIN_REFRESH_TOKEN"`

	// Args are the positional arguments left after flag parsing: the
	// command name and its operands.
	Args []string
}

// GetClientConfig merges environment variables and flags (flags win) into
// a [ClientConfig].
func GetClientConfig(args []string) (*ClientConfig, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, err
	}

	flagsCfg, err := parseClientFlags(args)
	if err != nil {
		return nil, err
	}

	cfg := new(ClientConfig)
	for _, c := range []*ClientConfig{envCfg, flagsCfg} {
		if err = mergo.Merge(cfg, c, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultClientServerAddress
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultClientRequestTimeout
	}

	return cfg, cfg.validate()
}

// parseClientFlags parses the client flags from args (without the program
// name).
//
// Flags:
//
//	-a server address
//	-timeout request timeout (e.g., "5s")
//	-access-token access token from an earlier login
//	-refresh-token refresh token from an earlier login
func parseClientFlags(args []string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	fs := flag.NewFlagSet("go-login-client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddress, "a", "", "Login server address")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Request timeout (e.g., 5s)")
	fs.StringVar(&cfg.AccessToken, "access-token", "", "Access token")
	fs.StringVar(&cfg.RefreshToken, "refresh-token", "", "Refresh token")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	cfg.Args = fs.Args()

	return cfg, nil
}

func (c *ClientConfig) validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidClientConfigs)
	}
	if len(c.Args) == 0 {
		return fmt.Errorf("%w: no command given", ErrInvalidClientConfigs)
	}
	return nil
}
