// Package token implements issuance and verification of the stateless
// credentials used by the API. A token is a self-contained HS256 JWT
// carrying the subject and role; validity is determined solely by its
// signature, expiry, and shape — there is no server-side session or
// revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
)

// Claims is the payload embedded in every issued token. Subject carries the
// username; Role carries the stored role at issuance time.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a single process-wide key. The key
// is read-only after construction, so a Service is safe for concurrent use.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue creates a signed token for subject with the given role, valid for ttl.
func (s *Service) Issue(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks raw against the signing key and returns the identity it
// proves. The signature is authenticated before any claim is trusted;
// failures are classified as ErrInvalidSignature, ErrExpired, or
// ErrMalformed, in that order of precedence.
func (s *Service) Verify(raw string) (domain.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Identity{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Identity{}, ErrExpired
		default:
			return domain.Identity{}, ErrMalformed
		}
	}
	if !parsed.Valid || claims.Subject == "" || claims.Role == "" {
		return domain.Identity{}, ErrMalformed
	}
	return domain.Identity{Subject: claims.Subject, Role: claims.Role}, nil
}
