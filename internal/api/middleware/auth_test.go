package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
	"github.com/sweet-shop/sweet-shop-api/internal/core/token"
)

func runAuth(t *testing.T, tokens *token.Service, header string) (domain.Identity, int) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen domain.Identity
	handler := Auth(tokens)(func(c echo.Context) error {
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return seen, rec.Code
}

func TestAuth_ValidToken_AttachesIdentity(t *testing.T) {
	tokens := token.NewService("secret")
	raw, err := tokens.Issue("alice", domain.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	identity, code := runAuth(t, tokens, "Bearer "+raw)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if identity.Subject != "alice" || identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuth_MissingHeader_ContinuesAnonymous(t *testing.T) {
	identity, code := runAuth(t, token.NewService("secret"), "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !identity.Anonymous() {
		t.Fatalf("expected anonymous identity, got %+v", identity)
	}
}

// A present-but-invalid token is treated exactly like an absent one: the
// filter continues the chain anonymous and never writes a response.
func TestAuth_InvalidToken_ContinuesAnonymous(t *testing.T) {
	tokens := token.NewService("secret")

	expired, err := tokens.Issue("alice", domain.RoleUser, -time.Second)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign, err := token.NewService("other-secret").Issue("alice", domain.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, header := range map[string]string{
		"garbage":      "Bearer not-a-token",
		"expired":      "Bearer " + expired,
		"wrong key":    "Bearer " + foreign,
		"wrong scheme": "Basic dXNlcjpwdw==",
	} {
		identity, code := runAuth(t, tokens, header)
		if code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", name, code)
		}
		if !identity.Anonymous() {
			t.Fatalf("%s: expected anonymous identity, got %+v", name, identity)
		}
	}
}

func TestAuth_BearerCaseInsensitive(t *testing.T) {
	tokens := token.NewService("secret")
	raw, err := tokens.Issue("bob", domain.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	identity, _ := runAuth(t, tokens, "bearer "+raw)
	if identity.Subject != "bob" {
		t.Fatalf("lowercase scheme not accepted: %+v", identity)
	}
}
