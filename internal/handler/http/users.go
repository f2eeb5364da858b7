package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/service"
	"github.com/MKhiriev/go-login-server/internal/utils"
	"github.com/MKhiriev/go-login-server/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.RegisterUser(ctx, req)
	if err != nil {
		log.Err(err).Str("login_id", req.LoginID).Msg("user registration failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("id", user.ID).Str("login_id", user.LoginID).Msg("user registered")
	utils.WriteJSON(w, models.RegisterResponse{
		ID:       user.ID,
		LoginID:  user.LoginID,
		Nickname: user.Nickname,
	}, http.StatusOK)
}

// checkID answers 200 when the login id is free and 409 when it is taken.
func (h *Handler) checkID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := r.URL.Query().Get("loginId")
	if loginID == "" {
		http.Error(w, msgMissingLoginID, http.StatusBadRequest)
		return
	}

	available, err := h.services.UserService.IsLoginIDAvailable(ctx, loginID)
	if err != nil {
		log.Err(err).Str("login_id", loginID).Msg("login id check failed")
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if !available {
		status = http.StatusConflict
	}
	utils.WriteJSON(w, models.CheckIDResponse{Available: available}, status)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	pair, err := h.services.UserService.LoginUser(ctx, req.LoginID, req.Password)
	if err != nil {
		log.Err(err).Str("login_id", req.LoginID).Msg("login failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		AccessToken:  pair.AccessToken.SignedString,
		RefreshToken: pair.RefreshToken.SignedString,
	}, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	pair, err := h.services.UserService.Refresh(ctx, req.LoginID, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			log.Info().Str("login_id", req.LoginID).Msg("invalid refresh token")
			http.Error(w, msgInvalidRefreshToken, http.StatusUnauthorized)
		default:
			log.Err(err).Str("login_id", req.LoginID).Msg("token refresh failed")
			writeError(w, err)
		}
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		AccessToken:  pair.AccessToken.SignedString,
		RefreshToken: pair.RefreshToken.SignedString,
	}, http.StatusOK)
}

// logout revokes the caller's refresh token. The access token stays valid
// until it expires.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		log.Err(ErrNoPrincipal).Send()
		http.Error(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	if err := h.services.UserService.Logout(ctx, principal.LoginID); err != nil {
		log.Err(err).Str("login_id", principal.LoginID).Msg("logout failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
