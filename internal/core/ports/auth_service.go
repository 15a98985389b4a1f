package ports

import "context"

// AuthService issues tokens on successful registration or login.
type AuthService interface {
	// Register creates the account and returns a token carrying the stored
	// role. An empty role defaults to domain.RoleUser.
	Register(ctx context.Context, username, password, role string) (string, error)
	// Login verifies the credentials and returns a token carrying the
	// stored role. Unknown users and wrong passwords are indistinguishable.
	Login(ctx context.Context, username, password string) (string, error)
}
