package service

import (
	"fmt"

	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/crypto"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/store"
	"github.com/MKhiriev/go-login-server/models"
)

type Services struct {
	TokenService   TokenService
	UserService    UserService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	hasher, err := crypto.NewPasswordHasher(cfg.App.PasswordHashAlgorithm, cfg.App.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	tokenService := NewTokenService(cfg.App)
	userService, err := NewUserService(
		storages.UserRepository,
		tokenService,
		hasher,
		NewNicknameGenerator(),
		cfg.App,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating user service: %w", err)
	}

	return &Services{
		TokenService:   tokenService,
		UserService:    userService,
		AppInfoService: appInfoService,
	}, nil
}
