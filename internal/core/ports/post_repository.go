package ports

import (
	"context"

	"github.com/99minutos/social-network/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	// Delete removes the post only when authorID owns it.
	Delete(ctx context.Context, id, authorID string) error
	// ToggleLike atomically adds accountID to the like set when absent and
	// removes it when present, returning the updated post.
	ToggleLike(ctx context.Context, postID, accountID string) (*domain.Post, error)
}
