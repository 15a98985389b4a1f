package api

import (
	"net/http"
	"testing"

	"github.com/sweet-shop/sweet-shop-api/internal/api/middleware"
	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

var (
	anonymous = domain.Identity{}
	shopper   = domain.Identity{Subject: "alice", Role: domain.RoleUser}
	admin     = domain.Identity{Subject: "root", Role: domain.RoleAdmin}
)

// Every route the API registers, for preflight and fail-closed checks.
var registeredRoutes = []struct{ method, path string }{
	{http.MethodPost, "/api/auth/register"},
	{http.MethodPost, "/api/auth/login"},
	{http.MethodGet, "/api/sweets"},
	{http.MethodGet, "/api/sweets/search"},
	{http.MethodGet, "/api/sweets/1"},
	{http.MethodPost, "/api/sweets"},
	{http.MethodPut, "/api/sweets/1"},
	{http.MethodDelete, "/api/sweets/1"},
	{http.MethodPost, "/api/sweets/1/purchase"},
	{http.MethodPost, "/api/sweets/1/restock"},
	{http.MethodGet, "/health"},
	{http.MethodGet, "/health/ready"},
	{http.MethodGet, "/metrics"},
	{http.MethodGet, "/swagger/index.html"},
}

func policy() *middleware.Policy {
	return middleware.NewPolicy(AccessRules()...)
}

func TestAccessRules_PreflightInvariance(t *testing.T) {
	p := policy()

	for _, r := range registeredRoutes {
		if got := p.Evaluate(http.MethodOptions, r.path, anonymous); got != middleware.Allow {
			t.Errorf("OPTIONS %s: expected Allow, got %v", r.path, got)
		}
	}
}

func TestAccessRules_PublicSurface(t *testing.T) {
	p := policy()

	public := []struct{ method, path string }{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodGet, "/api/sweets"},
		{http.MethodGet, "/api/sweets/search"},
		{http.MethodGet, "/api/sweets/1"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/metrics"},
	}
	for _, r := range public {
		if got := p.Evaluate(r.method, r.path, anonymous); got != middleware.Allow {
			t.Errorf("%s %s anonymous: expected Allow, got %v", r.method, r.path, got)
		}
	}
}

func TestAccessRules_AdminSurface(t *testing.T) {
	p := policy()

	adminOnly := []struct{ method, path string }{
		{http.MethodPost, "/api/sweets"},
		{http.MethodPut, "/api/sweets/1"},
		{http.MethodDelete, "/api/sweets/1"},
		{http.MethodPost, "/api/sweets/1/restock"},
	}
	for _, r := range adminOnly {
		if got := p.Evaluate(r.method, r.path, anonymous); got != middleware.DenyUnauthenticated {
			t.Errorf("%s %s anonymous: expected 401, got %v", r.method, r.path, got)
		}
		if got := p.Evaluate(r.method, r.path, shopper); got != middleware.DenyForbidden {
			t.Errorf("%s %s as USER: expected 403, got %v", r.method, r.path, got)
		}
		if got := p.Evaluate(r.method, r.path, admin); got != middleware.Allow {
			t.Errorf("%s %s as ADMIN: expected Allow, got %v", r.method, r.path, got)
		}
	}
}

func TestAccessRules_PurchaseRequiresAnyIdentity(t *testing.T) {
	p := policy()

	if got := p.Evaluate(http.MethodPost, "/api/sweets/1/purchase", anonymous); got != middleware.DenyUnauthenticated {
		t.Fatalf("anonymous purchase: expected 401, got %v", got)
	}
	for _, id := range []domain.Identity{shopper, admin} {
		if got := p.Evaluate(http.MethodPost, "/api/sweets/1/purchase", id); got != middleware.Allow {
			t.Fatalf("purchase as %s: expected Allow, got %v", id.Role, got)
		}
	}
}

func TestAccessRules_UnmappedRouteFailsClosed(t *testing.T) {
	p := policy()

	for _, id := range []domain.Identity{anonymous, shopper, admin} {
		if got := p.Evaluate(http.MethodPost, "/api/unmapped", id); got != middleware.DenyForbidden {
			t.Errorf("unmapped route for %q: expected DenyForbidden, got %v", id.Role, got)
		}
	}
}
