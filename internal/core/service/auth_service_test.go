package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
	"github.com/sweet-shop/sweet-shop-api/internal/core/token"
	"github.com/sweet-shop/sweet-shop-api/pkg/logger"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	copy.ID = user.Username
	r.users[copy.Username] = cloneUser(copy)
	return copy, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func newTestAuthService(repo *stubAuthRepo) (*AuthService, *token.Service) {
	tokens := token.NewService("secret")
	return NewAuthService(repo, tokens, time.Hour, logger.Discard()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc, tokens := newTestAuthService(repo)

	signed, err := svc.Register(context.Background(), "alice", "pass123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	id, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id.Subject != "alice" || id.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}

	stored := repo.users["alice"]
	if stored == nil {
		t.Fatalf("user not stored")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	repo := newStubAuthRepo()
	svc, tokens := newTestAuthService(repo)

	signed, err := svc.Register(context.Background(), "bob", "pass123", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if repo.users["bob"].Role != domain.RoleUser {
		t.Fatalf("expected stored role USER, got %s", repo.users["bob"].Role)
	}

	id, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Role != domain.RoleUser {
		t.Fatalf("expected role claim USER, got %s", id.Role)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "alice", "pw", domain.RoleUser); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "pw", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored record, got %d", len(repo.users))
	}
}

func TestAuthService_Register_BadRole(t *testing.T) {
	svc, _ := newTestAuthService(newStubAuthRepo())

	if _, err := svc.Register(context.Background(), "carol", "pw", "SUPERADMIN"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc, tokens := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "carol", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	id, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Subject != "carol" || id.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

// A wrong password and an unknown username must be externally identical.
func TestAuthService_Login_FailureOpacity(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "alice", "goodpass", domain.RoleUser)

	_, errWrongPw := svc.Login(context.Background(), "alice", "wrong-pw")
	_, errGhost := svc.Login(context.Background(), "ghost", "anything")

	if !errors.Is(errWrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if !errors.Is(errGhost, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errGhost)
	}
}
