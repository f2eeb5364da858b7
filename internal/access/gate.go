package access

import (
	"github.com/MKhiriev/go-login-server/models"
)

// Decision is the outcome of [Gate.Decide].
type Decision int

const (
	// Permit lets the request through.
	Permit Decision = iota

	// Unauthenticated rejects an anonymous caller from a protected path.
	Unauthenticated

	// Forbidden rejects an authenticated caller that lacks the required role.
	Forbidden
)

// String returns the lower-case name of d.
func (d Decision) String() string {
	switch d {
	case Permit:
		return "permit"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Rule binds path patterns to the policy that guards them.
type Rule struct {
	Patterns []string
	Policy   Policy
}

// Gate evaluates an ordered rule table. It is immutable after
// construction and safe for concurrent use.
type Gate struct {
	rules    []compiledRule
	fallback Policy
}

type compiledRule struct {
	patterns []pattern
	policy   Policy
}

// NewGate compiles rules in order. Paths no rule matches fall back to
// [Authenticated].
func NewGate(rules ...Rule) *Gate {
	g := &Gate{
		rules:    make([]compiledRule, 0, len(rules)),
		fallback: Authenticated(),
	}

	for _, r := range rules {
		cr := compiledRule{policy: r.Policy}
		for _, p := range r.Patterns {
			cr.patterns = append(cr.patterns, compilePattern(p))
		}
		g.rules = append(g.rules, cr)
	}

	return g
}

// Decide returns the decision of the first rule matching path for the
// given principal. A nil principal is anonymous.
func (g *Gate) Decide(path string, principal *models.Principal) Decision {
	segments := splitPath(path)

	for _, r := range g.rules {
		for _, p := range r.patterns {
			if p.match(segments) {
				return r.policy.Decide(principal)
			}
		}
	}

	return g.fallback.Decide(principal)
}

// DefaultRules returns the route table of the login server.
func DefaultRules() []Rule {
	return []Rule{
		{
			Patterns: []string{
				"/",
				"/swagger-ui/**",
				"/v3/api-docs/**",
				"/api/users/register",
				"/api/users/login",
				"/api/users/check-id",
				"/api/users/refresh-token",
			},
			Policy: PermitAll(),
		},
		{Patterns: []string{"/api/v1/user/*"}, Policy: RequireRole(models.RoleUser)},
		{Patterns: []string{"/api/v1/admin/*"}, Policy: RequireRole(models.RoleAdmin)},
	}
}
