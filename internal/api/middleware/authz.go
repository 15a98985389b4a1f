package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sweet-shop/sweet-shop-api/internal/api/metrics"
	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

// Requirement is the minimum identity state a rule demands.
type Requirement struct {
	authenticated bool
	role          string
}

var (
	// Public allows any request, identity or not.
	Public = Requirement{}
	// Authenticated allows any verified identity regardless of role.
	Authenticated = Requirement{authenticated: true}
)

// Role allows only a verified identity holding exactly the given role.
func Role(role string) Requirement {
	return Requirement{authenticated: true, role: role}
}

// Rule binds one (method, path pattern) pair to a requirement. Method "*"
// matches every method. Patterns are segment-wise: ":name" matches one
// segment, a trailing "*" matches the rest, and a bare "*" matches any path.
type Rule struct {
	Method  string
	Pattern string
	Require Requirement
}

// Decision is the outcome of evaluating the policy for one request.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Policy is the ordered, first-match-wins access rule table. It is built
// once at startup and read-only afterwards, and it evaluates without any
// routing infrastructure. A request matching no rule is denied.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Evaluate returns the decision for a request with the given verified
// identity (zero value = anonymous).
func (p *Policy) Evaluate(method, path string, identity domain.Identity) Decision {
	for _, r := range p.rules {
		if r.Method != "*" && r.Method != method {
			continue
		}
		if !matchPath(r.Pattern, path) {
			continue
		}
		return r.Require.decide(identity)
	}
	return DenyForbidden
}

func (req Requirement) decide(identity domain.Identity) Decision {
	if !req.authenticated {
		return Allow
	}
	if identity.Anonymous() {
		return DenyUnauthenticated
	}
	if req.role != "" && identity.Role != req.role {
		return DenyForbidden
	}
	return Allow
}

func matchPath(pattern, path string) bool {
	if pattern == "*" {
		return true
	}

	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ss := strings.Split(strings.Trim(path, "/"), "/")

	for i, seg := range ps {
		if seg == "*" {
			return true
		}
		if i >= len(ss) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if ss[i] == "" {
				return false
			}
			continue
		}
		if seg != ss[i] {
			return false
		}
	}
	return len(ps) == len(ss)
}

// Authorize evaluates the policy after the auth filter has run and either
// passes the request through or terminates it with 401/403.
func Authorize(policy *Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch policy.Evaluate(req.Method, req.URL.Path, IdentityFrom(c)) {
			case Allow:
				return next(c)
			case DenyUnauthenticated:
				metrics.AuthzDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			default:
				metrics.AuthzDeniedTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
		}
	}
}
