package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-login-server/internal/access"
	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/mock"
	"github.com/MKhiriev/go-login-server/internal/service"
	"github.com/MKhiriev/go-login-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testHandler bundles a Handler with the service mocks behind it.
type testHandler struct {
	*Handler
	users   *mock.MockUserService
	tokens  *mock.MockTokenService
	appInfo *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, ctrl *gomock.Controller) *testHandler {
	t.Helper()

	th := &testHandler{
		users:   mock.NewMockUserService(ctrl),
		tokens:  mock.NewMockTokenService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	th.Handler = NewHandler(&service.Services{
		TokenService:   th.tokens,
		UserService:    th.users,
		AppInfoService: th.appInfo,
	}, access.NewGate(access.DefaultRules()...), config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())

	return th
}

// expectPrincipal makes the token service accept token as an access token
// of principal.
func (th *testHandler) expectPrincipal(token string, principal models.Principal) {
	claims := models.Claims{Nickname: principal.Nickname, Role: principal.Role, Type: models.AccessTokenType}
	claims.Subject = principal.LoginID
	th.tokens.EXPECT().ParseClaims(token).Return(claims, nil).AnyTimes()
}

func serve(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svcs := &service.Services{}
	gate := access.NewGate()
	log := logger.Nop()

	h := NewHandler(svcs, gate, config.Server{RequestTimeout: time.Second}, log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Same(t, gate, h.gate)
	assert.Equal(t, time.Second, h.requestTimeout)
	assert.Equal(t, log, h.logger)
}

// ─────────────────────────────────────────────
// Init: routing and gate
// ─────────────────────────────────────────────

func TestInit_PublicRoutesReachHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	th := newTestHandler(t, ctrl)
	router := th.Init()

	th.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(models.AppInfoResponse{Name: "go-login-server", Version: "1.0.0"})

	rec := serve(router, http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[models.AppInfoResponse](t, rec)
	assert.Equal(t, "go-login-server", info.Name)
	assert.Equal(t, "1.0.0", info.Version)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_Gate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	th := newTestHandler(t, ctrl)
	router := th.Init()

	th.expectPrincipal("user-token", models.Principal{LoginID: "alice", Nickname: "Al", Role: models.RoleUser})
	th.tokens.EXPECT().ParseClaims("bad-token").Return(models.Claims{}, service.ErrInvalidToken).AnyTimes()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{"admin route anonymous", http.MethodGet, "/api/v1/admin/users?loginId=x", "", http.StatusUnauthorized, msgUnauthorized},
		{"admin route user", http.MethodGet, "/api/v1/admin/users?loginId=x", "user-token", http.StatusForbidden, msgForbidden},
		{"user route anonymous", http.MethodGet, "/api/v1/user/me", "", http.StatusUnauthorized, msgUnauthorized},
		{"user route invalid token", http.MethodGet, "/api/v1/user/me", "bad-token", http.StatusUnauthorized, msgUnauthorized},
		{"logout anonymous", http.MethodPost, "/api/users/logout", "", http.StatusUnauthorized, msgUnauthorized},
		{"unknown route anonymous", http.MethodGet, "/api/nonexistent", "", http.StatusUnauthorized, msgUnauthorized},
		{"unknown route authenticated", http.MethodGet, "/api/nonexistent", "user-token", http.StatusNotFound, ""},
		{"wrong method on public route", http.MethodGet, "/api/users/login", "", http.StatusNotFound, ""},
		{"wrong method on user route", http.MethodPost, "/api/v1/user/me", "user-token", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.method, tt.path, "", tt.token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}

func TestInit_InvalidTokenOnPublicRouteIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	th := newTestHandler(t, ctrl)
	router := th.Init()

	th.tokens.EXPECT().ParseClaims("expired").Return(models.Claims{}, service.ErrInvalidToken)
	th.users.EXPECT().IsLoginIDAvailable(gomock.Any(), "alice").Return(true, nil)

	rec := serve(router, http.MethodGet, "/api/users/check-id?loginId=alice", "", "expired")

	assert.Equal(t, http.StatusOK, rec.Code)
}
