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

type ProfileStore struct {
	col *mongo.Collection
	log *logger.Logger
}

func (ps *ProfileStore) Load(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := ps.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &profile, nil
}

func (ps *ProfileStore) LoadAll(ctx context.Context) ([]*domain.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := ps.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*domain.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

func (ps *ProfileStore) Save(ctx context.Context, profile *domain.Profile) error {
	next := *profile
	next.Version = profile.Version + 1

	if profile.Version == 0 {
		if _, err := ps.col.InsertOne(ctx, &next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return store.ErrVersionConflict
			}
			return fmt.Errorf("insert profile: %w", err)
		}
		profile.Version = next.Version
		return nil
	}

	res, err := ps.col.ReplaceOne(ctx, bson.M{"_id": profile.UserID, "version": profile.Version}, &next)
	if err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrVersionConflict
	}
	profile.Version = next.Version
	return nil
}

func (ps *ProfileStore) Delete(ctx context.Context, userID string) error {
	res, err := ps.col.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
