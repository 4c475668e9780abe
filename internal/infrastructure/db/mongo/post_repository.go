package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/social-network/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(collectionPosts)}
}

type authorDoc struct {
	UserID   primitive.ObjectID `bson:"user_id"`
	Name     string             `bson:"name"`
	Username string             `bson:"username"`
}

type postDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Description string               `bson:"description"`
	User        authorDoc            `bson:"user"`
	Likes       []primitive.ObjectID `bson:"likes"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (d postDoc) toDomain() *domain.Post {
	likes := make([]string, 0, len(d.Likes))
	for _, id := range d.Likes {
		likes = append(likes, id.Hex())
	}
	return &domain.Post{
		ID:          d.ID.Hex(),
		Description: d.Description,
		User: domain.PostAuthor{
			UserID:   d.User.UserID.Hex(),
			Name:     d.User.Name,
			Username: d.User.Username,
		},
		Likes:     likes,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// Create inserts post and assigns its generated ID.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	authorID, err := objectID(post.User.UserID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDoc{
		ID:          primitive.NewObjectID(),
		Description: post.Description,
		User: authorDoc{
			UserID:   authorID,
			Name:     post.User.Name,
			Username: post.User.Username,
		},
		Likes:     []primitive.ObjectID{},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = doc.ID.Hex()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := objectID(id, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every post, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	return r.find(ctx, bson.M{})
}

// ListByAuthor returns the posts whose author snapshot carries authorID.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return []*domain.Post{}, nil
	}
	return r.find(ctx, bson.M{"user.user_id": oid})
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}

	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	out := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Delete removes the post only when authorID wrote it.
func (r *PostRepository) Delete(ctx context.Context, id, authorID string) error {
	oid, err := objectID(id, domain.ErrPostNotFound)
	if err != nil {
		return err
	}
	aid, err := objectID(authorID, domain.ErrPostNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user.user_id": aid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// ToggleLike adds accountID to likes when absent and removes it when
// present, as one update on the post document.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, accountID string) (*domain.Post, error) {
	oid, err := objectID(postID, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	aid, err := objectID(accountID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	likes := bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"likes": bson.M{"$cond": bson.M{
				"if": bson.M{"$in": bson.A{aid, likes}},
				"then": bson.M{"$filter": bson.M{
					"input": likes,
					"as":    "id",
					"cond":  bson.M{"$ne": bson.A{"$$id", aid}},
				}},
				"else": bson.M{"$concatArrays": bson.A{likes, bson.A{aid}}},
			}},
			"updated_at": "$$NOW",
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc postDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user.user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
