package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-login-server/internal/service"
	"github.com/MKhiriev/go-login-server/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrInvalidCredentials:       http.StatusBadRequest,
	service.ErrInvalidToken:             http.StatusUnauthorized,
	service.ErrUserNotFound:             http.StatusNotFound,
	service.ErrTokenCreationFailed:      http.StatusInternalServerError,
	service.ErrNicknameGenerationFailed: http.StatusServiceUnavailable,

	store.ErrDuplicateLoginID:   http.StatusBadRequest,
	store.ErrDuplicateNickname:  http.StatusBadRequest,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

// clientErrors are reported to the client with their own message; any
// other error is answered with the generic status text.
var clientErrors = []error{
	service.ErrInvalidDataProvided,
	service.ErrInvalidCredentials,
	service.ErrUserNotFound,
	store.ErrDuplicateLoginID,
	store.ErrDuplicateNickname,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers err with its mapped status. Known client errors keep
// their sentinel message; everything else hides behind the status text.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	for _, target := range clientErrors {
		if errors.Is(err, target) {
			http.Error(w, target.Error(), status)
			return
		}
	}

	http.Error(w, http.StatusText(status), status)
}
