package http

import (
	"net/http"

	"github.com/MKhiriev/go-login-server/internal/access"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/utils"
	"github.com/MKhiriev/go-login-server/models"
)

// authenticate resolves the caller from the "Authorization: Bearer" header.
//
// A valid access token puts a [models.Principal] into the request context
// under [utils.PrincipalCtxKey]. A missing, malformed, expired or otherwise
// invalid token never fails the request here: it continues anonymously and
// the gate decides whether anonymity is acceptable.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("ignoring malformed Authorization header")
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.services.TokenService.ParseClaims(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("ignoring invalid access token")
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.WithPrincipal(r.Context(), models.Principal{
			LoginID:  claims.LoginID(),
			Nickname: claims.Nickname,
			Role:     claims.Role,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authorize applies the access gate to the request path: 401 for anonymous
// callers on protected paths, 403 for callers lacking the required role.
func (h *Handler) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var principal *models.Principal
		if p, ok := utils.GetPrincipalFromContext(r.Context()); ok {
			principal = &p
		}

		switch decision := h.gate.Decide(r.URL.Path, principal); decision {
		case access.Permit:
			next.ServeHTTP(w, r)
		case access.Forbidden:
			logger.FromRequest(r).Info().
				Str("path", r.URL.Path).
				Str("login_id", principal.LoginID).
				Msg("access denied")
			http.Error(w, msgForbidden, http.StatusForbidden)
		default:
			http.Error(w, msgUnauthorized, http.StatusUnauthorized)
		}
	})
}
