package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/social-network/internal/core/domain"
	"github.com/99minutos/social-network/internal/core/ports"
)

type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

// Get returns the account; a vanished account yields domain.ErrUserNotFound.
func (s *AccountService) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

// UpdateProfile applies a partial update. A missing caller is reported as
// domain.ErrUnauthorized because the token outlived its account.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, update domain.ProfileUpdate) (*domain.Account, error) {
	if update.Empty() {
		return s.caller(ctx, accountID)
	}

	account, err := s.repo.UpdateProfile(ctx, accountID, update)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	s.log.Info().Str("account_id", accountID).Msg("profile updated")
	return account, nil
}

// NotFollowed lists every account other than the caller that the caller
// does not follow yet.
func (s *AccountService) NotFollowed(ctx context.Context, accountID string) ([]*domain.Account, error) {
	account, err := s.caller(ctx, accountID)
	if err != nil {
		return nil, err
	}

	exclude := append(account.FollowingIDs(), account.ID)
	return s.repo.ListExcluding(ctx, exclude)
}

func (s *AccountService) Following(ctx context.Context, accountID string) ([]domain.AccountSnapshot, error) {
	account, err := s.caller(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return nonNil(account.Following), nil
}

func (s *AccountService) Followers(ctx context.Context, accountID string) ([]domain.AccountSnapshot, error) {
	account, err := s.caller(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return nonNil(account.Followers), nil
}

func (s *AccountService) caller(ctx context.Context, accountID string) (*domain.Account, error) {
	return loadCaller(ctx, s.repo, accountID)
}

// loadCaller fetches the authenticated account, mapping absence to
// domain.ErrUnauthorized.
func loadCaller(ctx context.Context, repo ports.AccountRepository, accountID string) (*domain.Account, error) {
	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return account, nil
}

func nonNil(list []domain.AccountSnapshot) []domain.AccountSnapshot {
	if list == nil {
		return []domain.AccountSnapshot{}
	}
	return list
}
