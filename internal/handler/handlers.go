package handler

import (
	"github.com/MKhiriev/go-login-server/internal/access"
	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/handler/http"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers. Routes are guarded by the
// default access rules.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	gate := access.NewGate(access.DefaultRules()...)

	return &Handlers{
		HTTP: http.NewHandler(services, gate, cfg, logger),
	}, nil
}
