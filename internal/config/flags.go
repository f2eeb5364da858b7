package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args (without the program
// name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key access token signing key
//	-refresh-token-sign-key refresh token signing key
//	-token-issuer token issuer name
//	-access-token-duration access token duration (e.g., "30m")
//	-refresh-token-duration refresh token duration (e.g., "168h")
//	-rotate-refresh-tokens issue a new refresh token on every refresh
//	-password-hash-algorithm bcrypt or argon2id
//	-password-hash-cost bcrypt cost
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level log level
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey, refreshTokenSignKey string
	var tokenIssuer string
	var accessTokenDuration, refreshTokenDuration time.Duration
	var rotateRefreshTokens bool
	var passwordHashAlgorithm string
	var passwordHashCost int
	var requestTimeout time.Duration
	var logLevel string

	fs := flag.NewFlagSet("go-login-server", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Access token signing key")
	fs.StringVar(&refreshTokenSignKey, "refresh-token-sign-key", "", "Refresh token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token duration (e.g., 30m)")
	fs.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token duration (e.g., 168h)")
	fs.BoolVar(&rotateRefreshTokens, "rotate-refresh-tokens", false, "Rotate refresh token on every refresh")
	fs.StringVar(&passwordHashAlgorithm, "password-hash-algorithm", "", "Password hash algorithm (bcrypt, argon2id)")
	fs.IntVar(&passwordHashCost, "password-hash-cost", 0, "bcrypt cost for password hashes")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:          tokenSignKey,
			RefreshTokenSignKey:   refreshTokenSignKey,
			TokenIssuer:           tokenIssuer,
			AccessTokenDuration:   accessTokenDuration,
			RefreshTokenDuration:  refreshTokenDuration,
			RotateRefreshTokens:   rotateRefreshTokens,
			PasswordHashAlgorithm: passwordHashAlgorithm,
			PasswordHashCost:      passwordHashCost,
			LogLevel:              logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
