package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/social-network/internal/core/domain"
)

// RelationshipRepository maintains the mirrored following/followers
// snapshots on account documents.
//
// The following side is always written first. Without transactions a
// crash between the two writes leaves a following entry with no mirror,
// which the repair pass completes.
type RelationshipRepository struct {
	client        *mongo.Client
	coll          *mongo.Collection
	transactional bool
}

func NewRelationshipRepository(db *mongo.Database, transactional bool) *RelationshipRepository {
	return &RelationshipRepository{
		client:        db.Client(),
		coll:          db.Collection(collectionAccounts),
		transactional: transactional,
	}
}

func (r *RelationshipRepository) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if !r.transactional {
		return fn(ctx)
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (r *RelationshipRepository) pair(a, b string) (primitive.ObjectID, primitive.ObjectID, error) {
	aid, err := objectID(a, domain.ErrUserNotFound)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	bid, err := objectID(b, domain.ErrUserNotFound)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return aid, bid, nil
}

func touch() bson.M {
	return bson.M{"updated_at": time.Now().UTC()}
}

// Follow records follower -> followee on both documents. A follower that
// already carries followee in following yields domain.ErrAlreadyFollowing.
func (r *RelationshipRepository) Follow(ctx context.Context, follower, followee domain.AccountSnapshot) error {
	fid, tid, err := r.pair(follower.ID, followee.ID)
	if err != nil {
		return err
	}

	return r.withTx(ctx, func(ctx context.Context) error {
		res, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": fid, "following._id": bson.M{"$ne": tid}},
			bson.M{"$push": bson.M{"following": snapshotDocFrom(tid, followee)}, "$set": touch()},
		)
		if err != nil {
			return fmt.Errorf("push following: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrAlreadyFollowing
		}

		if _, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": tid, "followers._id": bson.M{"$ne": fid}},
			bson.M{"$push": bson.M{"followers": snapshotDocFrom(fid, follower)}, "$set": touch()},
		); err != nil {
			return fmt.Errorf("push follower: %w", err)
		}
		return nil
	})
}

// Unfollow removes follower -> followee from both documents.
func (r *RelationshipRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	fid, tid, err := r.pair(followerID, followeeID)
	if err != nil {
		return err
	}

	return r.withTx(ctx, func(ctx context.Context) error {
		res, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": fid, "following._id": tid},
			bson.M{"$pull": bson.M{"following": bson.M{"_id": tid}}, "$set": touch()},
		)
		if err != nil {
			return fmt.Errorf("pull following: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrNotFollowing
		}

		if _, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": tid},
			bson.M{"$pull": bson.M{"followers": bson.M{"_id": fid}}, "$set": touch()},
		); err != nil {
			return fmt.Errorf("pull follower: %w", err)
		}
		return nil
	})
}

// RemoveFollower detaches followerID from userID's followers and drops
// userID from the follower's following.
func (r *RelationshipRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	uid, fid, err := r.pair(userID, followerID)
	if err != nil {
		return err
	}

	return r.withTx(ctx, func(ctx context.Context) error {
		if _, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": fid},
			bson.M{"$pull": bson.M{"following": bson.M{"_id": uid}}, "$set": touch()},
		); err != nil {
			return fmt.Errorf("pull following: %w", err)
		}

		res, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": uid, "followers._id": fid},
			bson.M{"$pull": bson.M{"followers": bson.M{"_id": fid}}, "$set": touch()},
		)
		if err != nil {
			return fmt.Errorf("pull follower: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrFollowerNotFound
		}
		return nil
	})
}

// EnsureFollower adds follower to accountID's followers when missing.
func (r *RelationshipRepository) EnsureFollower(ctx context.Context, accountID string, follower domain.AccountSnapshot) error {
	aid, fid, err := r.pair(accountID, follower.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": aid, "followers._id": bson.M{"$ne": fid}},
		bson.M{"$push": bson.M{"followers": snapshotDocFrom(fid, follower)}, "$set": touch()},
	)
	if err != nil {
		return fmt.Errorf("ensure follower: %w", err)
	}
	return nil
}

func (r *RelationshipRepository) DropFollower(ctx context.Context, accountID, followerID string) error {
	return r.pull(ctx, accountID, "followers", followerID)
}

func (r *RelationshipRepository) DropFollowing(ctx context.Context, accountID, followeeID string) error {
	return r.pull(ctx, accountID, "following", followeeID)
}

func (r *RelationshipRepository) pull(ctx context.Context, accountID, field, id string) error {
	aid, oid, err := r.pair(accountID, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": aid},
		bson.M{"$pull": bson.M{field: bson.M{"_id": oid}}, "$set": touch()},
	); err != nil {
		return fmt.Errorf("pull %s: %w", field, err)
	}
	return nil
}
