package http

import (
	"time"

	"github.com/MKhiriev/go-login-server/internal/access"
	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/service"
)

type Handler struct {
	services *service.Services
	gate     *access.Gate

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, gate *access.Gate, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		gate:           gate,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
