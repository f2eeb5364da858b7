// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package access decides whether a request path may be served to a caller.
//
// A [Gate] holds an ordered list of [Rule] values. Each rule pairs one or
// more path patterns with a [Policy]; the first rule whose pattern matches
// the request path decides the outcome. Paths that no rule matches require
// an authenticated caller.
//
// Patterns are split on "/" and compared segment by segment:
//
//	/api/users/login     matches exactly that path
//	/api/v1/user/*       "*" matches exactly one segment
//	/swagger-ui/**       "**" matches zero or more segments
//
// A nil principal stands for an anonymous caller.
package access
