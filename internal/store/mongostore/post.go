package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
	"github.com/devconnect/devconnect-backend/internal/store"
)

type PostStore struct {
	col *mongo.Collection
	log *logger.Logger
}

func (ps *PostStore) Load(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	err := ps.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	return &post, nil
}

func (ps *PostStore) LoadAll(ctx context.Context) ([]*domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := ps.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*domain.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (ps *PostStore) Save(ctx context.Context, post *domain.Post) error {
	next := *post
	next.Version = post.Version + 1

	if post.Version == 0 {
		if _, err := ps.col.InsertOne(ctx, &next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return store.ErrVersionConflict
			}
			return fmt.Errorf("insert post: %w", err)
		}
		post.Version = next.Version
		return nil
	}

	res, err := ps.col.ReplaceOne(ctx, bson.M{"_id": post.ID, "version": post.Version}, &next)
	if err != nil {
		return fmt.Errorf("replace post: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrVersionConflict
	}
	post.Version = next.Version
	return nil
}

func (ps *PostStore) Delete(ctx context.Context, id string) error {
	res, err := ps.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (ps *PostStore) DeleteByAuthor(ctx context.Context, userID string) error {
	if _, err := ps.col.DeleteMany(ctx, bson.M{"author_id": userID}); err != nil {
		return fmt.Errorf("delete posts by author: %w", err)
	}
	return nil
}
