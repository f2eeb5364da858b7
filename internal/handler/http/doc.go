// Package http serves the login API over chi.
//
// Routes cover registration, login-id checks, login, token refresh and
// logout under /api/users, plus the account endpoints under /api/v1. Every
// request passes trace id, access log, gzip and timeout middleware, then
// bearer token authentication and the [access.Gate] before it reaches a
// handler. Service errors become plain-text responses through
// statusFromError.
package http
