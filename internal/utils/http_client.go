package utils

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/go-resty/resty/v2"
)

const (
	defaultClientTimeout    = 10 * time.Second
	defaultClientRetryCount = 2
)

// HTTPClient is a JSON client for the login server API. It embeds
// *resty.Client, so every resty method is available directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", log)
//	resp, err := client.R().
//	    SetBody(models.LoginRequest{LoginID: "alice", Password: "pw"}).
//	    SetResult(&models.AuthResponse{}).
//	    Post("/api/users/login")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client whose relative request URLs resolve
// against baseURL. Requests and responses are JSON. Only GET requests are
// retried on transport errors: a POST may have taken effect on the server
// before its response was lost. resty's own messages go to log. Each call
// returns an independent client.
func NewHTTPClient(baseURL string, log *logger.Logger) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultClientTimeout).
		SetLogger(restyLogger{log: log}).
		SetRetryCount(defaultClientRetryCount).
		AddRetryCondition(retryIdempotentOnly).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &HTTPClient{Client: client}
}

// WithBearer returns a request authorized with accessToken.
func (c *HTTPClient) WithBearer(accessToken string) *resty.Request {
	return c.R().SetAuthToken(accessToken)
}

// retryIdempotentOnly is a resty retry condition. Once a condition is
// registered resty no longer retries on errors by itself, so this is the
// only path to a retry.
func retryIdempotentOnly(resp *resty.Response, err error) bool {
	if err == nil || resp == nil || resp.Request == nil {
		return false
	}
	return resp.Request.Method == http.MethodGet
}

// restyLogger routes resty's printf-style messages into zerolog.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug().Str("component", "resty").Msgf(format, v...)
}
