package http

import (
	"net/http"

	"github.com/MKhiriev/go-login-server/internal/utils"
)

func (h *Handler) getAppInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
