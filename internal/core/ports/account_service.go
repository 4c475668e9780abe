package ports

import (
	"context"

	"github.com/99minutos/social-network/internal/core/domain"
)

// AccountService exposes profile reads and updates for the calling account.
type AccountService interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, accountID string, update domain.ProfileUpdate) (*domain.Account, error)
	NotFollowed(ctx context.Context, accountID string) ([]*domain.Account, error)
	Following(ctx context.Context, accountID string) ([]domain.AccountSnapshot, error)
	Followers(ctx context.Context, accountID string) ([]domain.AccountSnapshot, error)
}
