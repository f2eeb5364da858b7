package access

import "github.com/MKhiriev/go-login-server/models"

// Policy decides access for a principal once a rule has matched.
type Policy interface {
	Decide(principal *models.Principal) Decision
}

// PolicyFunc adapts an ordinary function to [Policy].
type PolicyFunc func(principal *models.Principal) Decision

// Decide calls f(principal).
func (f PolicyFunc) Decide(principal *models.Principal) Decision {
	return f(principal)
}

// PermitAll admits every caller, anonymous ones included.
func PermitAll() Policy {
	return PolicyFunc(func(*models.Principal) Decision {
		return Permit
	})
}

// Authenticated admits any caller with a principal.
func Authenticated() Policy {
	return PolicyFunc(func(principal *models.Principal) Decision {
		if principal == nil {
			return Unauthenticated
		}
		return Permit
	})
}

// RequireRole admits callers whose role satisfies role. Anonymous callers
// are Unauthenticated; authenticated callers without the role are Forbidden.
func RequireRole(role models.Role) Policy {
	return PolicyFunc(func(principal *models.Principal) Decision {
		if principal == nil {
			return Unauthenticated
		}
		if !principal.Role.Satisfies(role) {
			return Forbidden
		}
		return Permit
	})
}
