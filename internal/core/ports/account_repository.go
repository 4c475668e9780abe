package ports

import (
	"context"

	"github.com/99minutos/social-network/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	// ExistsByUsernameOrEmail reports whether either value is already taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error)
	// ListExcluding returns every account whose ID is not in ids.
	ListExcluding(ctx context.Context, ids []string) ([]*domain.Account, error)
	ListIDs(ctx context.Context) ([]string, error)
}
