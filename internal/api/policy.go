package api

import (
	"net/http"

	"github.com/sweet-shop/sweet-shop-api/internal/api/middleware"
	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

// AccessRules is the complete, ordered access policy for the API. First
// match wins; anything unmatched is denied. The unconditional OPTIONS rule
// must stay first so CORS preflights never require credentials.
func AccessRules() []middleware.Rule {
	admin := middleware.Role(domain.RoleAdmin)

	return []middleware.Rule{
		{Method: http.MethodOptions, Pattern: "*", Require: middleware.Public},

		{Method: http.MethodPost, Pattern: "/api/auth/*", Require: middleware.Public},

		{Method: http.MethodGet, Pattern: "/api/sweets", Require: middleware.Public},
		{Method: http.MethodGet, Pattern: "/api/sweets/search", Require: middleware.Public},
		{Method: http.MethodGet, Pattern: "/api/sweets/:id", Require: middleware.Public},

		{Method: http.MethodPost, Pattern: "/api/sweets/:id/purchase", Require: middleware.Authenticated},

		{Method: http.MethodPost, Pattern: "/api/sweets", Require: admin},
		{Method: http.MethodPut, Pattern: "/api/sweets/:id", Require: admin},
		{Method: http.MethodDelete, Pattern: "/api/sweets/:id", Require: admin},
		{Method: http.MethodPost, Pattern: "/api/sweets/:id/restock", Require: admin},

		{Method: http.MethodGet, Pattern: "/health", Require: middleware.Public},
		{Method: http.MethodGet, Pattern: "/health/*", Require: middleware.Public},
		{Method: http.MethodGet, Pattern: "/metrics", Require: middleware.Public},
		{Method: http.MethodGet, Pattern: "/swagger/*", Require: middleware.Public},
	}
}
