package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Every request passes the trace id, access log,
// authentication and authorization middleware before reaching a route, so
// unknown paths in protected space answer 401 to anonymous callers.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.authenticate)
	router.Use(h.authorize)

	router.Get("/", h.getAppInfo)

	router.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Get("/check-id", h.checkID)
		r.Post("/login", h.login)
		r.Post("/refresh-token", h.refreshToken)
		r.Post("/logout", h.logout)
	})

	router.Get("/api/v1/user/me", h.me)
	router.Get("/api/v1/admin/users", h.adminGetUser)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
