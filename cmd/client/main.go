package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-login-server/internal/adapter"
	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/models"
)

const usage = `usage: go-login-client [flags] <command> [args]

commands:
  info                               server name and version
  check-id <loginId>                 whether a login id is free
  register <loginId> <password> [nickname]
  login <loginId> <password>         prints the token pair
  refresh <loginId>                  needs -refresh-token
  logout                             needs -access-token
  me                                 needs -access-token
  user <loginId>                     admin only, needs -access-token`

var errUsage = errors.New(usage)

func main() {
	log := logger.NewLogger("go-login-client")

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, usage)
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.ServerAddress, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}
	serverAdapter.SetTokens(cfg.AccessToken, cfg.RefreshToken)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	result, err := run(ctx, serverAdapter, cfg.Args)
	if err != nil {
		log.Fatal().Err(err).Str("command", cfg.Args[0]).Msg("command failed")
	}

	if result != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err = enc.Encode(result); err != nil {
			log.Fatal().Err(err).Msg("error writing result")
		}
	}
}

// run executes one command and returns the value to print, if any.
func run(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error) {
	cmd, operands := args[0], args[1:]

	switch {
	case cmd == "info" && len(operands) == 0:
		return a.AppInfo(ctx)
	case cmd == "check-id" && len(operands) == 1:
		available, err := a.IsLoginIDAvailable(ctx, operands[0])
		return models.CheckIDResponse{Available: available}, err
	case cmd == "register" && (len(operands) == 2 || len(operands) == 3):
		req := models.RegisterRequest{LoginID: operands[0], Password: operands[1]}
		if len(operands) == 3 {
			req.Nickname = operands[2]
		}
		return a.Register(ctx, req)
	case cmd == "login" && len(operands) == 2:
		if err := a.Login(ctx, operands[0], operands[1]); err != nil {
			return nil, err
		}
		return tokens(a), nil
	case cmd == "refresh" && len(operands) == 1:
		if err := a.Refresh(ctx, operands[0]); err != nil {
			return nil, err
		}
		return tokens(a), nil
	case cmd == "logout" && len(operands) == 0:
		return nil, a.Logout(ctx)
	case cmd == "me" && len(operands) == 0:
		return a.Me(ctx)
	case cmd == "user" && len(operands) == 1:
		return a.GetUser(ctx, operands[0])
	default:
		return nil, errUsage
	}
}

func tokens(a adapter.ServerAdapter) models.AuthResponse {
	accessToken, refreshToken := a.Tokens()
	return models.AuthResponse{AccessToken: accessToken, RefreshToken: refreshToken}
}
