package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/social-network/internal/core/domain"
	"github.com/99minutos/social-network/internal/core/ports"
)

type PostService struct {
	posts    ports.PostRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, accounts ports.AccountRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, accounts: accounts, logger: logger}
}

// Create stores a new post with a snapshot of the author's current name
// and username.
func (s *PostService) Create(ctx context.Context, accountID, description string) (*domain.Post, error) {
	author, err := loadCaller(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.ErrMissingFields
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Description: description,
		User: domain.PostAuthor{
			UserID:   author.ID,
			Name:     author.Name,
			Username: author.Username,
		},
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to create post")
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("account_id", accountID).Msg("post created")
	return post, nil
}

func (s *PostService) List(ctx context.Context, accountID string) ([]*domain.Post, error) {
	if _, err := loadCaller(ctx, s.accounts, accountID); err != nil {
		return nil, err
	}
	return s.posts.List(ctx)
}

func (s *PostService) ListOwn(ctx context.Context, accountID string) ([]*domain.Post, error) {
	if _, err := loadCaller(ctx, s.accounts, accountID); err != nil {
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, accountID)
}

// Delete removes a post owned by the caller.
func (s *PostService) Delete(ctx context.Context, accountID, postID string) error {
	if _, err := loadCaller(ctx, s.accounts, accountID); err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.User.UserID != accountID {
		return domain.ErrNotPostOwner
	}

	if err := s.posts.Delete(ctx, postID, accountID); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", postID).Str("account_id", accountID).Msg("post deleted")
	return nil
}

// ToggleLike flips the caller's membership in the post's like set.
func (s *PostService) ToggleLike(ctx context.Context, accountID, postID string) (*domain.Post, error) {
	if _, err := loadCaller(ctx, s.accounts, accountID); err != nil {
		return nil, err
	}

	post, err := s.posts.ToggleLike(ctx, postID, accountID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("post_id", postID).
		Str("account_id", accountID).
		Bool("liked", post.LikedBy(accountID)).
		Msg("post like toggled")
	return post, nil
}
