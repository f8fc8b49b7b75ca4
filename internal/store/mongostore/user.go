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

type UserStore struct {
	col *mongo.Collection
	log *logger.Logger
}

func (us *UserStore) Load(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := us.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (us *UserStore) LoadByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := us.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	return &user, nil
}

func (us *UserStore) LoadDisplay(ctx context.Context, ids []string) (map[string]domain.Owner, error) {
	if len(ids) == 0 {
		return map[string]domain.Owner{}, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "avatar": 1})
	cursor, err := us.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("load user display: %w", err)
	}
	defer cursor.Close(ctx)

	owners := make(map[string]domain.Owner, len(ids))
	for cursor.Next(ctx) {
		var row struct {
			ID     string `bson:"_id"`
			Name   string `bson:"name"`
			Avatar string `bson:"avatar"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode user display: %w", err)
		}
		owners[row.ID] = domain.Owner{Name: row.Name, Avatar: row.Avatar}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate user display: %w", err)
	}
	return owners, nil
}

func (us *UserStore) Save(ctx context.Context, user *domain.User) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := us.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (us *UserStore) Delete(ctx context.Context, id string) error {
	res, err := us.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
