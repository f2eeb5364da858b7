// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Response bodies shared by handlers and middleware.
const (
	msgInvalidJSON         = "Invalid JSON was passed"
	msgInvalidRefreshToken = "Invalid Refresh Token"
	msgUnauthorized        = "unauthorized"
	msgForbidden           = "forbidden"
	msgMissingLoginID      = "loginId query parameter is required"
)

// ErrNoPrincipal is logged when a handler behind the gate finds no
// principal in the request context.
var ErrNoPrincipal = errors.New("no principal in request context")
