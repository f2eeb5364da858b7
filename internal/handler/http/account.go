package http

import (
	"net/http"

	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/utils"
	"github.com/MKhiriev/go-login-server/models"
)

// me returns the account of the authenticated caller.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		log.Err(ErrNoPrincipal).Send()
		http.Error(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, principal.LoginID)
	if err != nil {
		log.Err(err).Str("login_id", principal.LoginID).Msg("user lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

// adminGetUser looks up any account by the loginId query parameter.
func (h *Handler) adminGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := r.URL.Query().Get("loginId")
	if loginID == "" {
		http.Error(w, msgMissingLoginID, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, loginID)
	if err != nil {
		log.Err(err).Str("login_id", loginID).Msg("user lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}
