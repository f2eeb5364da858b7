package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-login-server/internal/service"
	"github.com/MKhiriev/go-login-server/internal/utils"
	"github.com/MKhiriev/go-login-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// principalRecorder is a terminal handler that remembers the principal it
// was called with.
type principalRecorder struct {
	called    bool
	principal models.Principal
	found     bool
}

func (p *principalRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.called = true
	p.principal, p.found = utils.GetPrincipalFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func runAuthenticate(th *testHandler, authHeader string) *principalRecorder {
	next := &principalRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	th.authenticate(next).ServeHTTP(httptest.NewRecorder(), req)
	return next
}

// ── authenticate ─────────────────────────────────────────────────────────────

func TestAuthenticate_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	th := newTestHandler(t, ctrl)
	th.expectPrincipal("good", models.Principal{LoginID: "alice", Nickname: "Al", Role: models.RoleUser})

	next := runAuthenticate(th, "Bearer good")

	require.True(t, next.called)
	require.True(t, next.found)
	assert.Equal(t, models.Principal{LoginID: "alice", Nickname: "Al", Role: models.RoleUser}, next.principal)
}

func TestAuthenticate_AnonymousCases(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseCalls int
	}{
		{"no header", "", 0},
		{"scheme only", "Bearer", 0},
		{"basic scheme", "Basic dXNlcjpwYXNz", 0},
		{"too many parts", "Bearer a b", 0},
		{"invalid token", "Bearer garbage", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			th := newTestHandler(t, ctrl)
			th.tokens.EXPECT().ParseClaims(gomock.Any()).Return(models.Claims{}, service.ErrInvalidToken).Times(tt.parseCalls)

			next := runAuthenticate(th, tt.header)

			assert.True(t, next.called, "request must continue anonymously")
			assert.False(t, next.found)
		})
	}
}

// ── authorize ────────────────────────────────────────────────────────────────

func TestAuthorize(t *testing.T) {
	user := &models.Principal{LoginID: "alice", Role: models.RoleUser}
	admin := &models.Principal{LoginID: "root", Role: models.RoleAdmin}

	tests := []struct {
		name       string
		path       string
		principal  *models.Principal
		wantStatus int
		wantCalled bool
	}{
		{"public anonymous", "/api/users/login", nil, http.StatusOK, true},
		{"user route anonymous", "/api/v1/user/me", nil, http.StatusUnauthorized, false},
		{"user route user", "/api/v1/user/me", user, http.StatusOK, true},
		{"admin route user", "/api/v1/admin/users", user, http.StatusForbidden, false},
		{"admin route admin", "/api/v1/admin/users", admin, http.StatusOK, true},
		{"other route anonymous", "/somewhere", nil, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			th := newTestHandler(t, ctrl)
			next := &principalRecorder{}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.principal != nil {
				req = req.WithContext(utils.WithPrincipal(req.Context(), *tt.principal))
			}
			rec := httptest.NewRecorder()
			th.authorize(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, next.called)
		})
	}
}
