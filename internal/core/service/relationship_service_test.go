package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/social-network/internal/core/domain"
)

func newRelSvc() (*RelationshipService, *memStore) {
	store := newMemStore()
	return NewRelationshipService(store, relStore{store}, discardLogger), store
}

func TestRelationshipService_Follow_MirrorsBothSides(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	snap, err := svc.Follow(context.Background(), ann, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", snap.Username)

	assert.True(t, store.accounts[ann].IsFollowing(bob))
	assert.True(t, store.accounts[bob].HasFollower(ann))
	assert.Equal(t, domain.AccountSnapshot{ID: ann, Name: "Ann", Username: "ann"}, store.accounts[bob].Followers[0])
}

func TestRelationshipService_Follow_TwiceRejected(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	_, err := svc.Follow(context.Background(), ann, bob)
	require.NoError(t, err)

	_, err = svc.Follow(context.Background(), ann, bob)
	require.ErrorIs(t, err, domain.ErrAlreadyFollowing)

	assert.Len(t, store.accounts[ann].Following, 1)
	assert.Len(t, store.accounts[bob].Followers, 1)
}

func TestRelationshipService_Follow_Self(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")

	_, err := svc.Follow(context.Background(), ann, ann)
	require.ErrorIs(t, err, domain.ErrSelfFollow)
	assert.Empty(t, store.accounts[ann].Following)
}

func TestRelationshipService_Follow_UnknownTarget(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")

	_, err := svc.Follow(context.Background(), ann, "acc9999")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRelationshipService_Follow_VanishedCaller(t *testing.T) {
	svc, store := newRelSvc()
	bob := store.seed("Bob", "bob")

	_, err := svc.Follow(context.Background(), "acc9999", bob)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRelationshipService_Unfollow(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	_, err := svc.Follow(context.Background(), ann, bob)
	require.NoError(t, err)

	snap, err := svc.Unfollow(context.Background(), ann, bob)
	require.NoError(t, err)
	assert.Equal(t, bob, snap.ID)

	assert.False(t, store.accounts[ann].IsFollowing(bob))
	assert.False(t, store.accounts[bob].HasFollower(ann))
}

func TestRelationshipService_Unfollow_WithoutFollow(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")
	before := cloneAccount(store.accounts[bob])

	_, err := svc.Unfollow(context.Background(), ann, bob)
	require.ErrorIs(t, err, domain.ErrNotFollowing)
	assert.Equal(t, before, cloneAccount(store.accounts[bob]))
}

func TestRelationshipService_Unfollow_KeepsOtherEntries(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")
	cat := store.seed("Cat", "cat")

	for _, target := range []string{bob, cat} {
		_, err := svc.Follow(context.Background(), ann, target)
		require.NoError(t, err)
	}

	_, err := svc.Unfollow(context.Background(), ann, bob)
	require.NoError(t, err)

	assert.Equal(t, []string{cat}, store.accounts[ann].FollowingIDs())
	assert.True(t, store.accounts[cat].HasFollower(ann))
}

func TestRelationshipService_RemoveFollower(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	_, err := svc.Follow(context.Background(), bob, ann)
	require.NoError(t, err)

	snap, err := svc.RemoveFollower(context.Background(), ann, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", snap.Username)

	assert.False(t, store.accounts[ann].HasFollower(bob))
	assert.False(t, store.accounts[bob].IsFollowing(ann))
}

func TestRelationshipService_RemoveFollower_NotAFollower(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	// ann following bob does not make bob ann's follower.
	_, err := svc.Follow(context.Background(), ann, bob)
	require.NoError(t, err)

	_, err = svc.RemoveFollower(context.Background(), ann, bob)
	require.ErrorIs(t, err, domain.ErrFollowerNotFound)
	assert.True(t, store.accounts[ann].IsFollowing(bob))
}

// ---------------------------------------------------------------------------
// Repair
// ---------------------------------------------------------------------------

func TestRelationshipService_Repair_AddsMissingFollower(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	// Simulate a crash after the following-side write.
	store.accounts[ann].Following = []domain.AccountSnapshot{store.accounts[bob].Snapshot()}

	report, err := svc.Repair(context.Background(), ann)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FollowersAdded)
	assert.True(t, report.Changed())
	assert.True(t, store.accounts[bob].HasFollower(ann))
}

func TestRelationshipService_Repair_DropsUnbackedFollower(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	store.accounts[ann].Followers = []domain.AccountSnapshot{store.accounts[bob].Snapshot()}

	report, err := svc.Repair(context.Background(), ann)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FollowersDropped)
	assert.Empty(t, store.accounts[ann].Followers)
}

func TestRelationshipService_Repair_DropsFollowingOfMissingAccount(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")

	store.accounts[ann].Following = []domain.AccountSnapshot{{ID: "acc9999", Username: "ghost"}}

	report, err := svc.Repair(context.Background(), ann)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FollowingDropped)
	assert.Empty(t, store.accounts[ann].Following)
}

func TestRelationshipService_Repair_ConsistentIsNoop(t *testing.T) {
	svc, store := newRelSvc()
	ann := store.seed("Ann", "ann")
	bob := store.seed("Bob", "bob")

	_, err := svc.Follow(context.Background(), ann, bob)
	require.NoError(t, err)
	_, err = svc.Follow(context.Background(), bob, ann)
	require.NoError(t, err)

	for _, id := range []string{ann, bob} {
		report, err := svc.Repair(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, report.Changed(), "account %s", id)
	}
}

func TestRelationshipService_Repair_UnknownAccount(t *testing.T) {
	svc, _ := newRelSvc()

	_, err := svc.Repair(context.Background(), "acc9999")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
