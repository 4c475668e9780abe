package ports

import (
	"context"

	"github.com/99minutos/social-network/internal/core/domain"
)

// PostService defines use-case operations for posts. Every call is made on
// behalf of an authenticated account, which must still exist.
type PostService interface {
	Create(ctx context.Context, accountID, description string) (*domain.Post, error)
	List(ctx context.Context, accountID string) ([]*domain.Post, error)
	ListOwn(ctx context.Context, accountID string) ([]*domain.Post, error)
	Delete(ctx context.Context, accountID, postID string) error
	ToggleLike(ctx context.Context, accountID, postID string) (*domain.Post, error)
}
