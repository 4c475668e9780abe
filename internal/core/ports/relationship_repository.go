package ports

import (
	"context"

	"github.com/99minutos/social-network/internal/core/domain"
)

// RelationshipRepository mutates the mirrored following/followers arrays.
//
// Every method touches two account documents. Implementations either wrap
// both writes in one transaction or apply them in order following-side
// first, so that a partial failure can be fixed by a repair pass.
type RelationshipRepository interface {
	// Follow appends followee to follower.following and follower to
	// followee.followers. Returns domain.ErrAlreadyFollowing when the
	// follower side already holds followee.
	Follow(ctx context.Context, follower, followee domain.AccountSnapshot) error

	// Unfollow removes followee from follower.following and follower from
	// followee.followers. Returns domain.ErrNotFollowing when follower does
	// not currently follow followee.
	Unfollow(ctx context.Context, followerID, followeeID string) error

	// RemoveFollower removes followerID from userID.followers and userID
	// from followerID.following. Returns domain.ErrFollowerNotFound when
	// followerID is not in userID.followers.
	RemoveFollower(ctx context.Context, userID, followerID string) error

	// Single-document, idempotent primitives used by the repair pass.
	EnsureFollower(ctx context.Context, accountID string, follower domain.AccountSnapshot) error
	DropFollower(ctx context.Context, accountID, followerID string) error
	DropFollowing(ctx context.Context, accountID, followeeID string) error
}
