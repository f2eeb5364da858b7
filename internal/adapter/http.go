package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/utils"
	"github.com/MKhiriev/go-login-server/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of
// [ServerAdapter]. address may omit the scheme, in which case http is
// assumed. A non-positive timeout keeps the client default.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, logger)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Tokens implements [ServerAdapter].
func (h *httpServerAdapter) Tokens() (string, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accessToken, h.refreshToken
}

// SetTokens implements [ServerAdapter].
func (h *httpServerAdapter) SetTokens(accessToken, refreshToken string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessToken = strings.TrimSpace(accessToken)
	h.refreshToken = strings.TrimSpace(refreshToken)
}

// Register implements [ServerAdapter]. It POSTs to /api/users/register.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	var registered models.RegisterResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&registered).
		Post("/api/users/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return registered, nil
}

// IsLoginIDAvailable implements [ServerAdapter]. The server answers 409
// for a taken login id, which is a result here rather than an error.
func (h *httpServerAdapter) IsLoginIDAvailable(ctx context.Context, loginID string) (bool, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("loginId", loginID).
		Get("/api/users/check-id")
	if err != nil {
		return false, fmt.Errorf("check id request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusConflict:
		return false, nil
	default:
		return false, mapHTTPError(resp)
	}
}

// Login implements [ServerAdapter]. It POSTs to /api/users/login.
func (h *httpServerAdapter) Login(ctx context.Context, loginID, password string) error {
	var tokens models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{LoginID: loginID, Password: password}).
		SetResult(&tokens).
		Post("/api/users/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetTokens(tokens.AccessToken, tokens.RefreshToken)
	return nil
}

// Refresh implements [ServerAdapter]. It POSTs to /api/users/refresh-token.
func (h *httpServerAdapter) Refresh(ctx context.Context, loginID string) error {
	_, refreshToken := h.Tokens()
	if refreshToken == "" {
		return ErrNotLoggedIn
	}

	var tokens models.AuthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshTokenRequest{LoginID: loginID, RefreshToken: refreshToken}).
		SetResult(&tokens).
		Post("/api/users/refresh-token")
	if err != nil {
		return fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if tokens.RefreshToken != "" {
		h.logger.Debug().Msg("refresh token rotated by server")
		refreshToken = tokens.RefreshToken
	}
	h.SetTokens(tokens.AccessToken, refreshToken)
	return nil
}

// Logout implements [ServerAdapter]. Local tokens are dropped even when the
// server call fails.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	defer h.SetTokens("", "")

	resp, err := req.Post("/api/users/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

// Me implements [ServerAdapter]. It GETs /api/v1/user/me.
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserResponse{}, err
	}

	var user models.UserResponse
	resp, err := req.SetResult(&user).Get("/api/v1/user/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

// GetUser implements [ServerAdapter]. It GETs /api/v1/admin/users.
func (h *httpServerAdapter) GetUser(ctx context.Context, loginID string) (models.UserResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserResponse{}, err
	}

	var user models.UserResponse
	resp, err := req.
		SetQueryParam("loginId", loginID).
		SetResult(&user).
		Get("/api/v1/admin/users")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

// AppInfo implements [ServerAdapter]. It GETs /.
func (h *httpServerAdapter) AppInfo(ctx context.Context) (models.AppInfoResponse, error) {
	var info models.AppInfoResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/")
	if err != nil {
		return models.AppInfoResponse{}, fmt.Errorf("app info request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppInfoResponse{}, err
	}

	return info, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	accessToken, _ := h.Tokens()
	if accessToken == "" {
		return nil, ErrNotLoggedIn
	}
	return h.client.WithBearer(accessToken).SetContext(ctx), nil
}
