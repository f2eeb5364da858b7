package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-login-server/internal/logger"
)

// withLogging writes one access log line per request. Request bodies are
// never logged since they carry passwords and tokens.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		status := lw.status
		if status == 0 {
			// handler returned without writing anything
			status = http.StatusOK
		}

		log.Info().
			Str("uri", r.URL.Path).
			Str("method", r.Method).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
