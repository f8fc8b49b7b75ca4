package store

import (
	"context"
	"errors"

	"github.com/devconnect/devconnect-backend/internal/domain"
)

var (
	// ErrNotFound is returned when no aggregate exists under the given key.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned by Save when the aggregate's version no
	// longer matches the stored one. Callers re-read and retry.
	ErrVersionConflict = errors.New("version conflict")
)

// PostStore persists the Post aggregate. Save is an upsert keyed by id with a
// compare-and-swap on Version: a Post with Version n replaces only a stored
// Version n and is persisted as n+1; Version 0 inserts.
type PostStore interface {
	Load(ctx context.Context, id string) (*domain.Post, error)
	LoadAll(ctx context.Context) ([]*domain.Post, error)
	Save(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, userID string) error
}

// ProfileStore persists the Profile aggregate, keyed by the owning user id.
type ProfileStore interface {
	Load(ctx context.Context, userID string) (*domain.Profile, error)
	LoadAll(ctx context.Context) ([]*domain.Profile, error)
	Save(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, userID string) error
}

// UserStore persists user records for the auth collaborator and for display
// joins.
type UserStore interface {
	Load(ctx context.Context, id string) (*domain.User, error)
	LoadByEmail(ctx context.Context, email string) (*domain.User, error)
	LoadDisplay(ctx context.Context, ids []string) (map[string]domain.Owner, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
