package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
)

type AuthService interface {
	// Register creates a local account with a hashed password. Social-login
	// accounts come in through UserService.Save instead.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
