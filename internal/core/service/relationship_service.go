package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/social-network/internal/core/domain"
	"github.com/99minutos/social-network/internal/core/ports"
)

// RelationshipService keeps each pair of accounts' following/followers
// arrays consistent. The read-side checks give callers a precise error;
// the repository re-checks atomically on write.
type RelationshipService struct {
	accounts ports.AccountRepository
	rels     ports.RelationshipRepository
	log      zerolog.Logger
}

func NewRelationshipService(accounts ports.AccountRepository, rels ports.RelationshipRepository, log zerolog.Logger) *RelationshipService {
	return &RelationshipService{accounts: accounts, rels: rels, log: log}
}

// Follow makes accountID follow targetID.
func (s *RelationshipService) Follow(ctx context.Context, accountID, targetID string) (*domain.AccountSnapshot, error) {
	if accountID == targetID {
		return nil, domain.ErrSelfFollow
	}

	user, target, err := s.pair(ctx, accountID, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsFollowing(targetID) {
		return nil, domain.ErrAlreadyFollowing
	}

	if err := s.rels.Follow(ctx, user.Snapshot(), target.Snapshot()); err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", accountID).Str("target_id", targetID).Msg("relationship followed")
	snap := target.Snapshot()
	return &snap, nil
}

// Unfollow removes the accountID → targetID relationship on both sides.
func (s *RelationshipService) Unfollow(ctx context.Context, accountID, targetID string) (*domain.AccountSnapshot, error) {
	user, target, err := s.pair(ctx, accountID, targetID)
	if err != nil {
		return nil, err
	}
	if !user.IsFollowing(targetID) {
		return nil, domain.ErrNotFollowing
	}

	if err := s.rels.Unfollow(ctx, accountID, targetID); err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", accountID).Str("target_id", targetID).Msg("relationship unfollowed")
	snap := target.Snapshot()
	return &snap, nil
}

// RemoveFollower drops followerID from accountID's followers without any
// action from the follower.
func (s *RelationshipService) RemoveFollower(ctx context.Context, accountID, followerID string) (*domain.AccountSnapshot, error) {
	user, follower, err := s.pair(ctx, accountID, followerID)
	if err != nil {
		return nil, err
	}
	if !user.HasFollower(followerID) {
		return nil, domain.ErrFollowerNotFound
	}

	if err := s.rels.RemoveFollower(ctx, accountID, followerID); err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", accountID).Str("follower_id", followerID).Msg("follower removed")
	snap := follower.Snapshot()
	return &snap, nil
}

// Repair reconciles one account with its counterparts. The following side
// is authoritative:
//   - a following entry whose target exists but lacks the mirrored
//     follower entry gets it added;
//   - a following entry whose target no longer exists is dropped;
//   - a follower entry not backed by the follower's following entry is dropped.
func (s *RelationshipService) Repair(ctx context.Context, accountID string) (ports.RepairReport, error) {
	report := ports.RepairReport{AccountID: accountID}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return report, fmt.Errorf("repair %s: %w", accountID, err)
	}

	for _, f := range account.Following {
		other, err := s.accounts.FindByID(ctx, f.ID)
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			if err := s.rels.DropFollowing(ctx, accountID, f.ID); err != nil {
				return report, fmt.Errorf("repair %s: drop following: %w", accountID, err)
			}
			report.FollowingDropped++
			continue
		case err != nil:
			return report, fmt.Errorf("repair %s: %w", accountID, err)
		}

		if !other.HasFollower(accountID) {
			if err := s.rels.EnsureFollower(ctx, f.ID, account.Snapshot()); err != nil {
				return report, fmt.Errorf("repair %s: ensure follower: %w", accountID, err)
			}
			report.FollowersAdded++
		}
	}

	for _, g := range account.Followers {
		other, err := s.accounts.FindByID(ctx, g.ID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return report, fmt.Errorf("repair %s: %w", accountID, err)
		}
		if other != nil && other.IsFollowing(accountID) {
			continue
		}
		if err := s.rels.DropFollower(ctx, accountID, g.ID); err != nil {
			return report, fmt.Errorf("repair %s: drop follower: %w", accountID, err)
		}
		report.FollowersDropped++
	}

	if report.Changed() {
		s.log.Warn().
			Str("account_id", accountID).
			Int("followers_added", report.FollowersAdded).
			Int("followers_dropped", report.FollowersDropped).
			Int("following_dropped", report.FollowingDropped).
			Msg("relationships repaired")
	}
	return report, nil
}

// pair loads the caller and the other party. A missing caller is
// unauthorized; a missing other party is not found.
func (s *RelationshipService) pair(ctx context.Context, accountID, otherID string) (*domain.Account, *domain.Account, error) {
	user, err := loadCaller(ctx, s.accounts, accountID)
	if err != nil {
		return nil, nil, err
	}
	other, err := s.accounts.FindByID(ctx, otherID)
	if err != nil {
		return nil, nil, err
	}
	return user, other, nil
}
