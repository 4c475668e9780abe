package ports

import (
	"context"

	"github.com/99minutos/social-network/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login returns a signed session token for the account.
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
