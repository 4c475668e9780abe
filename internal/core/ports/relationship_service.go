package ports

import (
	"context"

	"github.com/99minutos/social-network/internal/core/domain"
)

// RepairReport summarises what a repair pass changed on one account.
type RepairReport struct {
	AccountID        string
	FollowersAdded   int
	FollowersDropped int
	FollowingDropped int
}

// Changed reports whether the pass modified anything.
func (r RepairReport) Changed() bool {
	return r.FollowersAdded+r.FollowersDropped+r.FollowingDropped > 0
}

// RelationshipService applies follow mutations across two accounts. Each
// mutation returns the snapshot of the other party for display.
type RelationshipService interface {
	Follow(ctx context.Context, accountID, targetID string) (*domain.AccountSnapshot, error)
	Unfollow(ctx context.Context, accountID, targetID string) (*domain.AccountSnapshot, error)
	RemoveFollower(ctx context.Context, accountID, followerID string) (*domain.AccountSnapshot, error)
	Repair(ctx context.Context, accountID string) (RepairReport, error)
}
